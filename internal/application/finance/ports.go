package finance

import (
	"context"

	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

// TxRunner executa a baixa de um lançamento dentro de uma transação: marcação
// SETTLED e aplicação do valor no saldo bancário confirmam juntas.
type TxRunner interface {
	RunSettlement(ctx context.Context, fn func(
		entryRepo repository.AccountEntryRepository,
		bankRepo repository.BankAccountRepository,
	) error) error
}

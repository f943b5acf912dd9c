package marketplace

import (
	"context"

	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

// TxRunner executa a importação de uma venda dentro de uma única transação:
// registro da venda (chave de idempotência), baixas de estoque de todas as
// linhas e lançamentos financeiros confirmam juntos ou nada fica visível.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		posRepo repository.StockPositionRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		entryRepo repository.AccountEntryRepository,
	) error) error
}

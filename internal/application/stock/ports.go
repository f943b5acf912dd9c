package stock

import (
	"context"

	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando os
// repositórios do ledger atados a essa transação. Garante a atomicidade
// posição+movimento por chave.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		posRepo repository.StockPositionRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

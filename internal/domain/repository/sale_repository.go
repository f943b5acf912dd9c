package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
)

// SaleRepository define o porto para vendas importadas do marketplace.
type SaleRepository interface {
	// Create insere a venda; violação do índice único de ExternalOrderID
	// devolve ErrDuplicateSale (chave de idempotência da importação).
	Create(ctx context.Context, sale *entity.Sale) error
	GetByExternalOrderID(ctx context.Context, externalOrderID string) (*entity.Sale, error)
	UpdateProfit(ctx context.Context, id string, profit decimal.Decimal) error
	List(ctx context.Context, limit int) ([]*entity.Sale, error)
}

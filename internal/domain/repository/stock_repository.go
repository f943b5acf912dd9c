package repository

import (
	"context"

	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
)

// StockPositionRepository define o porto para a posição materializada por
// (empresa, produto). Mutações acontecem sempre dentro de transação, com a
// linha bloqueada via GetForUpdate (serialização por chave).
type StockPositionRepository interface {
	// Get devolve a posição; se não existir, devolve uma posição zerada
	// (criação preguiçosa no primeiro movimento). Leitura pura.
	Get(ctx context.Context, companyID, productID string) (*entity.StockPosition, error)
	// GetForUpdate bloqueia a linha (SELECT FOR UPDATE) para o
	// read-modify-write do custo médio.
	GetForUpdate(ctx context.Context, companyID, productID string) (*entity.StockPosition, error)
	Upsert(ctx context.Context, position *entity.StockPosition) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockPosition, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.StockPosition, error)
	// ListAll alimenta a valoração de inventário do financeiro.
	ListAll(ctx context.Context) ([]*entity.StockPosition, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
}

// StockMovementRepository define o porto para o log imutável de movimentos.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByKey(ctx context.Context, companyID, productID string, limit int) ([]*entity.StockMovement, error)
	// SumDeltaByKey devolve a soma assinada dos deltas da chave; usada pela
	// checagem de consistência posição == fold(movimentos).
	SumDeltaByKey(ctx context.Context, companyID, productID string) (int64, error)
}

package repository

import (
	"context"

	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
)

// ProductRepository define o porto de persistência para o catálogo.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// List devolve o catálogo; filter é casado contra nome e SKU já
	// normalizados (sem acentos), vazio devolve tudo.
	List(ctx context.Context, filter string, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

// ProductUseCase regras de negócio do catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create cadastra um produto. SKU é único; duplicado devolve domain.ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SellPrice.IsNegative() {
		return nil, fmt.Errorf("preço de venda %s: %w", in.SellPrice, domain.ErrInvalidInput)
	}
	existing, _ := uc.repo.GetBySKU(ctx, in.SKU)
	if existing != nil {
		return nil, fmt.Errorf("SKU %s: %w", in.SKU, domain.ErrDuplicate)
	}
	now := time.Now()
	unit := in.Unit
	if unit == "" {
		unit = "UN"
	}
	product := &entity.Product{
		ID:         uuid.New().String(),
		SKU:        in.SKU,
		Barcode:    in.Barcode,
		Name:       in.Name,
		Category:   in.Category,
		Unit:       unit,
		OutOfState: in.OutOfState,
		SellPrice:  in.SellPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID busca um produto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("produto %s: %w", id, domain.ErrNotFound)
	}
	return product, nil
}

// List lista o catálogo; filter casa nome/SKU sem considerar acentos.
func (uc *ProductUseCase) List(ctx context.Context, filter string, page dto.PageRequest) ([]*entity.Product, error) {
	page.DefaultPage()
	return uc.repo.List(ctx, filter, page.Limit, page.Offset)
}

// Update edita os campos do produto. O SKU não muda depois de criado: é a
// identidade usada por notas e pelo marketplace.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*entity.Product, error) {
	product, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SellPrice.IsNegative() {
		return nil, fmt.Errorf("preço de venda %s: %w", in.SellPrice, domain.ErrInvalidInput)
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Barcode != "" {
		product.Barcode = in.Barcode
	}
	if in.Category != "" {
		product.Category = in.Category
	}
	if in.Unit != "" {
		product.Unit = in.Unit
	}
	product.OutOfState = in.OutOfState
	if !in.SellPrice.IsZero() {
		product.SellPrice = in.SellPrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete remove um produto do catálogo.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

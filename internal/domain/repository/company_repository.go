package repository

import (
	"context"

	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
)

// CompanyRepository define o porto de persistência para empresas (CNPJs).
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// Delete remove a empresa; falha com ErrCompanyInUse se existir posição
	// de estoque referenciando-a.
	Delete(ctx context.Context, id string) error
}

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

// CompanyUseCase regras de negócio para empresas do grupo (CNPJs).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase constrói o caso de uso com o porto de persistência.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create cadastra uma empresa. Devolve domain.ErrDuplicate se o CNPJ já existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CompanyRequest) (*entity.Company, error) {
	if in.CNPJ == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCNPJ(ctx, in.CNPJ)
	if existing != nil {
		return nil, fmt.Errorf("CNPJ %s: %w", in.CNPJ, domain.ErrDuplicate)
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		CNPJ:      in.CNPJ,
		Name:      in.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetByID busca uma empresa.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", id, domain.ErrNotFound)
	}
	return company, nil
}

// List lista as empresas cadastradas.
func (uc *CompanyUseCase) List(ctx context.Context) ([]*entity.Company, error) {
	return uc.repo.List(ctx)
}

// Update edita nome e flag de ativa.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.CompanyRequest) (*entity.Company, error) {
	company, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		company.Name = in.Name
	}
	if in.Active != nil {
		company.Active = *in.Active
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete remove a empresa; o repositório devolve ErrCompanyInUse enquanto
// houver posição de estoque referenciando-a.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

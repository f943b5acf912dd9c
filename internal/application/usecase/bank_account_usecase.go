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

// BankAccountUseCase cadastro de contas bancárias. O saldo inicial é aceito
// na criação; daí em diante só muda por baixas do financeiro.
type BankAccountUseCase struct {
	repo repository.BankAccountRepository
}

// NewBankAccountUseCase constrói o caso de uso.
func NewBankAccountUseCase(repo repository.BankAccountRepository) *BankAccountUseCase {
	return &BankAccountUseCase{repo: repo}
}

// Create cadastra uma conta com o saldo inicial informado.
func (uc *BankAccountUseCase) Create(ctx context.Context, in dto.BankAccountRequest) (*entity.BankAccount, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	account := &entity.BankAccount{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Bank:      in.Bank,
		Balance:   in.Balance,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// List lista as contas.
func (uc *BankAccountUseCase) List(ctx context.Context) ([]*entity.BankAccount, error) {
	return uc.repo.List(ctx)
}

// Update edita nome, banco e flag de ativa. O saldo não é editável por aqui.
func (uc *BankAccountUseCase) Update(ctx context.Context, id string, in dto.BankAccountRequest) (*entity.BankAccount, error) {
	account, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("conta bancária %s: %w", id, domain.ErrNotFound)
	}
	if in.Name != "" {
		account.Name = in.Name
	}
	if in.Bank != "" {
		account.Bank = in.Bank
	}
	if in.Active != nil {
		account.Active = *in.Active
	}
	account.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
)

// MonthlyTotal é uma linha do histórico financeiro: total e contagem de
// lançamentos por (ano, mês, tipo).
type MonthlyTotal struct {
	Year  int
	Month int
	Type  string
	Total decimal.Decimal
	Count int
}

// AccountEntryRepository define o porto para lançamentos a pagar/receber.
type AccountEntryRepository interface {
	Create(ctx context.Context, entry *entity.AccountEntry) error
	GetByID(ctx context.Context, id string) (*entity.AccountEntry, error)
	// GetForUpdate bloqueia o lançamento para a baixa (guarda de AlreadySettled).
	GetForUpdate(ctx context.Context, id string) (*entity.AccountEntry, error)
	List(ctx context.Context, status string) ([]*entity.AccountEntry, error)
	MarkSettled(ctx context.Context, id, bankAccountID string, settledAt time.Time) error
	// SumPendingByType soma os lançamentos PENDING do tipo dado.
	SumPendingByType(ctx context.Context, entryType string) (decimal.Decimal, error)
	// SumByTypeBetween soma lançamentos do tipo com ocorrência no período.
	SumByTypeBetween(ctx context.Context, entryType string, start, end time.Time) (decimal.Decimal, error)
	// MonthlyTotals agrupa por (ano, mês, tipo), mais recente primeiro.
	MonthlyTotals(ctx context.Context, limit int) ([]MonthlyTotal, error)
}

// BankAccountRepository define o porto para contas bancárias.
type BankAccountRepository interface {
	Create(ctx context.Context, account *entity.BankAccount) error
	GetByID(ctx context.Context, id string) (*entity.BankAccount, error)
	// GetForUpdate bloqueia a conta para aplicar o valor da baixa.
	GetForUpdate(ctx context.Context, id string) (*entity.BankAccount, error)
	List(ctx context.Context) ([]*entity.BankAccount, error)
	Update(ctx context.Context, account *entity.BankAccount) error
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
	// SumBalances soma o saldo das contas ativas.
	SumBalances(ctx context.Context) (decimal.Decimal, error)
}

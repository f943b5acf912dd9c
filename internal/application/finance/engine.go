// Package finance implementa o motor de conciliação financeira: lançamentos
// a pagar/receber, baixas contra contas bancárias e relatórios agregados
// consistentes com o ledger de estoque.
package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

// Engine é o dono exclusivo de AccountEntry e BankAccount. O saldo bancário
// só muda pela baixa de lançamentos.
type Engine struct {
	txRunner     TxRunner
	entryRepo    repository.AccountEntryRepository
	bankRepo     repository.BankAccountRepository
	positionRepo repository.StockPositionRepository
}

// NewEngine constrói o motor. positionRepo é usado apenas em leitura, para a
// valoração de inventário dos relatórios.
func NewEngine(
	txRunner TxRunner,
	entryRepo repository.AccountEntryRepository,
	bankRepo repository.BankAccountRepository,
	positionRepo repository.StockPositionRepository,
) *Engine {
	return &Engine{txRunner: txRunner, entryRepo: entryRepo, bankRepo: bankRepo, positionRepo: positionRepo}
}

// Post lança uma conta PENDING. Validação mínima: tipo conhecido, valor
// positivo e referência de origem não vazia.
func (e *Engine) Post(ctx context.Context, in dto.PostEntryRequest) (*entity.AccountEntry, error) {
	if in.Type != entity.EntryPayable && in.Type != entity.EntryReceivable {
		return nil, fmt.Errorf("tipo %q: %w", in.Type, domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("valor %s: %w", in.Amount, domain.ErrInvalidInput)
	}
	if in.SourceRef == "" {
		return nil, fmt.Errorf("lançamento sem referência de origem: %w", domain.ErrInvalidInput)
	}
	due := in.DueDate
	if due.IsZero() {
		due = time.Now()
	}
	entry := &entity.AccountEntry{
		ID:           uuid.New().String(),
		Type:         in.Type,
		Description:  in.Description,
		Amount:       in.Amount,
		DueDate:      due,
		Status:       entity.EntryPending,
		Counterparty: in.Counterparty,
		SourceRef:    in.SourceRef,
		CreatedAt:    time.Now(),
	}
	if err := e.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("lançar conta: %w", err)
	}
	return entry, nil
}

// Settle baixa um lançamento por inteiro contra uma conta bancária: soma no
// saldo quando a receber, subtrai quando a pagar. Lançamento já baixado
// devolve ErrAlreadySettled; valor diferente do lançamento devolve
// ErrAmountMismatch (baixa parcial exige lançamento corretivo, nunca ajuste
// silencioso).
func (e *Engine) Settle(ctx context.Context, entryID, bankAccountID string, amount decimal.Decimal, date time.Time) error {
	if date.IsZero() {
		date = time.Now()
	}
	return e.txRunner.RunSettlement(ctx, func(
		entryRepo repository.AccountEntryRepository,
		bankRepo repository.BankAccountRepository,
	) error {
		entry, err := entryRepo.GetForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return fmt.Errorf("lançamento %s: %w", entryID, domain.ErrNotFound)
		}
		if entry.Status != entity.EntryPending {
			return fmt.Errorf("lançamento %s: %w", entryID, domain.ErrAlreadySettled)
		}
		if !amount.Equal(entry.Amount) {
			return fmt.Errorf("lançamento %s: baixa %s vs valor %s: %w",
				entryID, amount, entry.Amount, domain.ErrAmountMismatch)
		}

		account, err := bankRepo.GetForUpdate(ctx, bankAccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("conta bancária %s: %w", bankAccountID, domain.ErrNotFound)
		}

		delta := amount
		if entry.Type == entity.EntryPayable {
			delta = amount.Neg()
		}
		if err := bankRepo.UpdateBalance(ctx, account.ID, account.Balance.Add(delta)); err != nil {
			return err
		}
		return entryRepo.MarkSettled(ctx, entry.ID, account.ID, date)
	})
}

// Report agrega a fotografia financeira do período:
// patrimônio líquido = saldo bancário + a receber pendente - a pagar pendente.
func (e *Engine) Report(ctx context.Context, start, end time.Time) (*dto.FinanceReportDTO, error) {
	payables, err := e.entryRepo.SumPendingByType(ctx, entity.EntryPayable)
	if err != nil {
		return nil, err
	}
	receivables, err := e.entryRepo.SumPendingByType(ctx, entity.EntryReceivable)
	if err != nil {
		return nil, err
	}
	bankBalance, err := e.bankRepo.SumBalances(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := e.entryRepo.SumByTypeBetween(ctx, entity.EntryReceivable, start, end)
	if err != nil {
		return nil, err
	}
	expense, err := e.entryRepo.SumByTypeBetween(ctx, entity.EntryPayable, start, end)
	if err != nil {
		return nil, err
	}
	return &dto.FinanceReportDTO{
		PayablesPending:    payables,
		ReceivablesPending: receivables,
		BankBalance:        bankBalance,
		NetWorth:           bankBalance.Add(receivables).Sub(payables),
		RevenueInPeriod:    revenue,
		ExpenseInPeriod:    expense,
		PeriodStart:        start,
		PeriodEnd:          end,
	}, nil
}

// History devolve os totais mensais por tipo, mais recente primeiro.
func (e *Engine) History(ctx context.Context, limit int) ([]dto.MonthlyTotalDTO, error) {
	if limit <= 0 {
		limit = 24
	}
	rows, err := e.entryRepo.MonthlyTotals(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MonthlyTotalDTO, len(rows))
	for i, r := range rows {
		out[i] = dto.MonthlyTotalDTO{Year: r.Year, Month: r.Month, Type: r.Type, Total: r.Total, Count: r.Count}
	}
	return out, nil
}

// InventoryValuation soma quantidade x custo médio de todas as posições.
// Posições negativas contribuem valor negativo: a valoração reflete a dívida
// de estoque de um backorder em vez de escondê-la.
func (e *Engine) InventoryValuation(ctx context.Context) (decimal.Decimal, error) {
	positions, err := e.positionRepo.ListAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(decimal.NewFromInt(p.Quantity).Mul(p.AverageCost))
	}
	return total, nil
}

// Entries lista lançamentos por status (vazio = todos).
func (e *Engine) Entries(ctx context.Context, status string) ([]*entity.AccountEntry, error) {
	return e.entryRepo.List(ctx, status)
}

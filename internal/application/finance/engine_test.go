package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/application/finance"
	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/testutil/memrepo"
)

const bankID = "banco-1"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newEngine(t *testing.T) (*finance.Engine, *memrepo.Store) {
	t.Helper()
	store := memrepo.NewStore()
	store.SeedBank(entity.BankAccount{ID: bankID, Name: "Conta Corrente", Bank: "Itaú", Balance: dec("1000.00"), Active: true})
	e := finance.NewEngine(
		memrepo.NewTxRunner(store),
		memrepo.NewEntryRepo(store),
		memrepo.NewBankRepo(store),
		memrepo.NewPositionRepo(store),
	)
	return e, store
}

func postEntry(typ, amount string) dto.PostEntryRequest {
	return dto.PostEntryRequest{
		Type:         typ,
		Description:  "lançamento de teste",
		Amount:       dec(amount),
		Counterparty: "Contraparte",
		SourceRef:    "manual-1",
	}
}

// TestPost lança uma conta PENDING com vencimento padrão hoje.
func TestPost(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	entry, err := e.Post(ctx, postEntry(entity.EntryPayable, "150.00"))
	require.NoError(t, err)
	assert.Equal(t, entity.EntryPending, entry.Status)
	assert.False(t, entry.DueDate.IsZero())
	assert.NotEmpty(t, entry.ID)
}

// TestPost_Rejeites cobre tipo desconhecido, valor não positivo e falta de
// referência de origem.
func TestPost_Rejeites(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	_, err := e.Post(ctx, postEntry("TRANSFER", "10.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.Post(ctx, postEntry(entity.EntryPayable, "0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req := postEntry(entity.EntryReceivable, "10.00")
	req.SourceRef = ""
	_, err = e.Post(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestSettle_PagarSubtraiDoSaldo baixa uma conta a pagar: saldo bancário cai
// pelo valor e o lançamento fica SETTLED com a conta e a data.
func TestSettle_PagarSubtraiDoSaldo(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	entry, err := e.Post(ctx, postEntry(entity.EntryPayable, "300.00"))
	require.NoError(t, err)

	when := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, e.Settle(ctx, entry.ID, bankID, dec("300.00"), when))

	assert.True(t, store.Bank(bankID).Balance.Equal(dec("700.00")), "obtido %s", store.Bank(bankID).Balance)

	settled := store.Entries()[0]
	assert.Equal(t, entity.EntrySettled, settled.Status)
	assert.Equal(t, bankID, settled.BankAccountID)
	require.NotNil(t, settled.SettledAt)
	assert.True(t, settled.SettledAt.Equal(when))
}

// TestSettle_ReceberSomaAoSaldo baixa uma conta a receber: saldo sobe.
func TestSettle_ReceberSomaAoSaldo(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	entry, err := e.Post(ctx, postEntry(entity.EntryReceivable, "250.00"))
	require.NoError(t, err)
	require.NoError(t, e.Settle(ctx, entry.ID, bankID, dec("250.00"), time.Now()))
	assert.True(t, store.Bank(bankID).Balance.Equal(dec("1250.00")))
}

// TestSettle_JaBaixado: a segunda baixa falha com ErrAlreadySettled e o saldo
// não é aplicado duas vezes.
func TestSettle_JaBaixado(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	entry, err := e.Post(ctx, postEntry(entity.EntryPayable, "100.00"))
	require.NoError(t, err)
	require.NoError(t, e.Settle(ctx, entry.ID, bankID, dec("100.00"), time.Now()))

	err = e.Settle(ctx, entry.ID, bankID, dec("100.00"), time.Now())
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)
	assert.True(t, store.Bank(bankID).Balance.Equal(dec("900.00")), "saldo não pode ser aplicado duas vezes")
}

// TestSettle_ValorDivergente: baixa parcial não existe; valor diferente do
// lançamento falha com ErrAmountMismatch sem tocar o saldo.
func TestSettle_ValorDivergente(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	entry, err := e.Post(ctx, postEntry(entity.EntryPayable, "100.00"))
	require.NoError(t, err)

	err = e.Settle(ctx, entry.ID, bankID, dec("60.00"), time.Now())
	assert.ErrorIs(t, err, domain.ErrAmountMismatch)
	assert.True(t, store.Bank(bankID).Balance.Equal(dec("1000.00")))
	assert.Equal(t, entity.EntryPending, store.Entries()[0].Status)
}

// TestSettle_NaoEncontrados cobre lançamento e conta bancária inexistentes.
func TestSettle_NaoEncontrados(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	err := e.Settle(ctx, "nao-existe", bankID, dec("10.00"), time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	entry, err := e.Post(ctx, postEntry(entity.EntryPayable, "10.00"))
	require.NoError(t, err)
	err = e.Settle(ctx, entry.ID, "banco-fantasma", dec("10.00"), time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestReport agrega a fotografia do período:
// patrimônio líquido = saldo + a receber pendente - a pagar pendente.
func TestReport(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	store.SeedEntry(entity.AccountEntry{ID: "r1", Type: entity.EntryReceivable, Amount: dec("200.00"), DueDate: now, Status: entity.EntryPending, CreatedAt: now})
	store.SeedEntry(entity.AccountEntry{ID: "p1", Type: entity.EntryPayable, Amount: dec("300.00"), DueDate: now, Status: entity.EntryPending, CreatedAt: now})
	// Lançamento baixado não entra nas pendências, mas entra no fluxo do período.
	store.SeedEntry(entity.AccountEntry{ID: "p2", Type: entity.EntryPayable, Amount: dec("50.00"), DueDate: now, Status: entity.EntrySettled, CreatedAt: now})
	// Fora do período: não entra no fluxo.
	store.SeedEntry(entity.AccountEntry{ID: "r2", Type: entity.EntryReceivable, Amount: dec("999.00"), DueDate: now.AddDate(0, -2, 0), Status: entity.EntrySettled, CreatedAt: now})

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	report, err := e.Report(ctx, start, end)
	require.NoError(t, err)

	assert.True(t, report.ReceivablesPending.Equal(dec("200.00")))
	assert.True(t, report.PayablesPending.Equal(dec("300.00")))
	assert.True(t, report.BankBalance.Equal(dec("1000.00")))
	// 1000 + 200 - 300 = 900
	assert.True(t, report.NetWorth.Equal(dec("900.00")), "obtido %s", report.NetWorth)
	assert.True(t, report.RevenueInPeriod.Equal(dec("200.00")))
	assert.True(t, report.ExpenseInPeriod.Equal(dec("350.00")))
}

// TestInventoryValuation soma quantidade x custo médio; posição negativa
// contribui valor negativo.
func TestInventoryValuation(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	store.SeedPosition(entity.StockPosition{CompanyID: "e1", ProductID: "p1", Quantity: 10, AverageCost: dec("6.00")})
	store.SeedPosition(entity.StockPosition{CompanyID: "e2", ProductID: "p1", Quantity: -2, AverageCost: dec("5.00")})

	total, err := e.InventoryValuation(ctx)
	require.NoError(t, err)
	// 10*6 - 2*5 = 50
	assert.True(t, total.Equal(dec("50.00")), "obtido %s", total)
}

// TestHistory agrupa por (ano, mês, tipo), mais recente primeiro.
func TestHistory(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	jul := time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC)
	ago := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	store.SeedEntry(entity.AccountEntry{ID: "h1", Type: entity.EntryPayable, Amount: dec("100.00"), DueDate: jul, Status: entity.EntrySettled})
	store.SeedEntry(entity.AccountEntry{ID: "h2", Type: entity.EntryPayable, Amount: dec("40.00"), DueDate: ago, Status: entity.EntryPending})
	store.SeedEntry(entity.AccountEntry{ID: "h3", Type: entity.EntryReceivable, Amount: dec("70.00"), DueDate: ago, Status: entity.EntryPending})

	rows, err := e.History(ctx, 12)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 8, rows[0].Month)
	assert.Equal(t, entity.EntryPayable, rows[0].Type)
	assert.True(t, rows[0].Total.Equal(dec("40.00")))
	assert.Equal(t, 8, rows[1].Month)
	assert.Equal(t, entity.EntryReceivable, rows[1].Type)
	assert.Equal(t, 7, rows[2].Month)
	assert.True(t, rows[2].Total.Equal(dec("100.00")))
}

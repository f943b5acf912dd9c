package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerotto1967/gestao-api/internal/application/analytics"
	"github.com/Gerotto1967/gestao-api/internal/application/finance"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
	"github.com/Gerotto1967/gestao-api/internal/testutil/memrepo"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeAnalytics devolve métricas fixas (a agregação real vive em SQL e é
// coberta pela migração, não por teste unitário).
type fakeAnalytics struct {
	metrics repository.SalesMetrics
	err     error
}

func (f *fakeAnalytics) GetSalesMetrics(ctx context.Context, start, end time.Time) (repository.SalesMetrics, error) {
	return f.metrics, f.err
}

// TestGetSummary junta contadores, vendas do mês, fotografia financeira e
// valoração de estoque num único DTO.
func TestGetSummary(t *testing.T) {
	store := memrepo.NewStore()
	store.SeedProduct(entity.Product{ID: "p1", SKU: "SKU-1", Name: "Parafuso"})
	store.SeedProduct(entity.Product{ID: "p2", SKU: "SKU-2", Name: "Porca"})
	store.SeedPosition(entity.StockPosition{CompanyID: "e1", ProductID: "p1", Quantity: 10, AverageCost: dec("6.00")})
	store.SeedBank(entity.BankAccount{ID: "b1", Name: "CC", Balance: dec("1000.00"), Active: true})
	store.SeedEntry(entity.AccountEntry{ID: "r1", Type: entity.EntryReceivable, Amount: dec("200.00"), DueDate: time.Now(), Status: entity.EntryPending})
	store.SeedEntry(entity.AccountEntry{ID: "p1", Type: entity.EntryPayable, Amount: dec("300.00"), DueDate: time.Now(), Status: entity.EntryPending})

	engine := finance.NewEngine(
		memrepo.NewTxRunner(store),
		memrepo.NewEntryRepo(store),
		memrepo.NewBankRepo(store),
		memrepo.NewPositionRepo(store),
	)
	uc := analytics.NewDashboardUseCase(
		memrepo.NewCustomerRepo(store),
		memrepo.NewSupplierRepo(store),
		memrepo.NewProductRepo(store),
		&fakeAnalytics{metrics: repository.SalesMetrics{UnitsSold: 42, ValueSold: dec("840.00")}},
		engine,
	)

	summary, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalClients)
	assert.Equal(t, 0, summary.TotalSuppliers)
	assert.Equal(t, 2, summary.TotalProducts)
	assert.True(t, summary.InventoryValue.Equal(dec("60.00")), "obtido %s", summary.InventoryValue)
	assert.Equal(t, int64(42), summary.UnitsSoldInPeriod)
	assert.True(t, summary.ValueSoldInPeriod.Equal(dec("840.00")))
	assert.True(t, summary.PayablesPending.Equal(dec("300.00")))
	assert.True(t, summary.ReceivablesPending.Equal(dec("200.00")))
	assert.True(t, summary.BankBalance.Equal(dec("1000.00")))
	// 1000 + 200 - 300 = 900
	assert.True(t, summary.NetWorth.Equal(dec("900.00")), "obtido %s", summary.NetWorth)
}

// TestGetSummary_FalhaDeFonte: erro em qualquer fonte aborta o resumo.
func TestGetSummary_FalhaDeFonte(t *testing.T) {
	store := memrepo.NewStore()
	engine := finance.NewEngine(
		memrepo.NewTxRunner(store),
		memrepo.NewEntryRepo(store),
		memrepo.NewBankRepo(store),
		memrepo.NewPositionRepo(store),
	)
	boom := errors.New("fonte indisponível")
	uc := analytics.NewDashboardUseCase(
		memrepo.NewCustomerRepo(store),
		memrepo.NewSupplierRepo(store),
		memrepo.NewProductRepo(store),
		&fakeAnalytics{err: boom},
		engine,
	)

	_, err := uc.GetSummary(context.Background())
	assert.ErrorIs(t, err, boom)
}

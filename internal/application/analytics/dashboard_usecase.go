// Package analytics contém o caso de uso do dashboard do console: contadores
// gerais, vendas do mês e fotografia financeira, em consultas paralelas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/application/finance"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

// DashboardUseCase monta o resumo do mês corrente.
type DashboardUseCase struct {
	customerRepo  repository.CustomerRepository
	supplierRepo  repository.SupplierRepository
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
	engine        *finance.Engine
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	analyticsRepo repository.AnalyticsRepository,
	engine *finance.Engine,
) *DashboardUseCase {
	return &DashboardUseCase{
		customerRepo:  customerRepo,
		supplierRepo:  supplierRepo,
		productRepo:   productRepo,
		analyticsRepo: analyticsRepo,
		engine:        engine,
	}
}

// GetSummary devolve o DashboardDTO do mês corrente (dia 1 até agora).
// As quatro fontes são consultadas em paralelo; a primeira falha aborta.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardDTO, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type countsResult struct {
		clients, suppliers, products int
		err                          error
	}
	type salesResult struct {
		metrics repository.SalesMetrics
		err     error
	}
	type financeResult struct {
		report *dto.FinanceReportDTO
		err    error
	}
	type valuationResult struct {
		value decimal.Decimal
		err   error
	}

	countsCh := make(chan countsResult, 1)
	salesCh := make(chan salesResult, 1)
	financeCh := make(chan financeResult, 1)
	valuationCh := make(chan valuationResult, 1)

	go func() {
		var r countsResult
		if r.clients, r.err = uc.customerRepo.Count(ctx); r.err != nil {
			countsCh <- r
			return
		}
		if r.suppliers, r.err = uc.supplierRepo.Count(ctx); r.err != nil {
			countsCh <- r
			return
		}
		r.products, r.err = uc.productRepo.Count(ctx)
		countsCh <- r
	}()
	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, monthStart, now)
		salesCh <- salesResult{m, err}
	}()
	go func() {
		r, err := uc.engine.Report(ctx, monthStart, now)
		financeCh <- financeResult{r, err}
	}()
	go func() {
		v, err := uc.engine.InventoryValuation(ctx)
		valuationCh <- valuationResult{v, err}
	}()

	counts := <-countsCh
	sales := <-salesCh
	fin := <-financeCh
	valuation := <-valuationCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: contadores: %w", counts.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: vendas do mês: %w", sales.err)
	}
	if fin.err != nil {
		return nil, fmt.Errorf("dashboard: financeiro: %w", fin.err)
	}
	if valuation.err != nil {
		return nil, fmt.Errorf("dashboard: valoração de estoque: %w", valuation.err)
	}

	return &dto.DashboardDTO{
		TotalClients:       counts.clients,
		TotalSuppliers:     counts.suppliers,
		TotalProducts:      counts.products,
		InventoryValue:     valuation.value.Round(2),
		UnitsSoldInPeriod:  sales.metrics.UnitsSold,
		ValueSoldInPeriod:  sales.metrics.ValueSold.Round(2),
		PayablesPending:    fin.report.PayablesPending,
		ReceivablesPending: fin.report.ReceivablesPending,
		BankBalance:        fin.report.BankBalance,
		NetWorth:           fin.report.NetWorth,
	}, nil
}

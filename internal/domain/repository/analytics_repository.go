package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetrics agrega vendas do canal num período: unidades baixadas
// (movimentos SALE) e valor bruto vendido (vendas importadas).
type SalesMetrics struct {
	UnitsSold int64
	ValueSold decimal.Decimal
}

// AnalyticsRepository define consultas read-only para o dashboard.
type AnalyticsRepository interface {
	GetSalesMetrics(ctx context.Context, start, end time.Time) (SalesMetrics, error)
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only de agregados para o dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics agrega as vendas do período: unidades baixadas do estoque
// (movimentos de saída) e valor bruto das vendas importadas.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, start, end time.Time) (repository.SalesMetrics, error) {
	var m repository.SalesMetrics

	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(-quantity), 0) FROM stock_movements
		 WHERE kind = $1 AND created_at >= $2 AND created_at < $3`,
		string(entity.MovementSale), start, end,
	).Scan(&m.UnitsSold)
	if err != nil {
		return m, fmt.Errorf("sum units sold: %w", err)
	}

	err = r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(gross_amount), 0) FROM sales
		 WHERE created_at >= $1 AND created_at < $2`,
		start, end,
	).Scan(&m.ValueSold)
	if err != nil {
		return m, fmt.Errorf("sum value sold: %w", err)
	}

	return m, nil
}

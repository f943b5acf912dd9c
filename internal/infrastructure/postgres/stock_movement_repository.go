package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação do log de movimentos sobre PostgreSQL
// (usável com pool ou tx). A tabela é append-only: não há Update nem Delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste um movimento de estoque.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, company_id, product_id, kind, quantity, unit_cost, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), $8)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.CompanyID, movement.ProductID, string(movement.Kind),
		movement.Quantity, movement.UnitCost, movement.Reference, createdBy,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByKey lista os movimentos de uma chave, mais recentes primeiro.
func (r *StockMovementRepo) ListByKey(ctx context.Context, companyID, productID string, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, company_id, product_id, kind, quantity, unit_cost, reference, created_at, COALESCE(created_by, '')
		FROM stock_movements
		WHERE company_id = $1 AND product_id = $2
		ORDER BY created_at DESC LIMIT $3`
	rows, err := r.q.Query(ctx, query, companyID, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var kind string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ProductID, &kind, &m.Quantity,
			&m.UnitCost, &m.Reference, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Kind = entity.MovementKind(kind)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumDeltaByKey devolve a soma assinada dos deltas dos movimentos da chave.
func (r *StockMovementRepo) SumDeltaByKey(ctx context.Context, companyID, productID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE company_id = $1 AND product_id = $2`,
		companyID, productID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

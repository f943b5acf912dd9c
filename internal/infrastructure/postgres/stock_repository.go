package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

var _ repository.StockPositionRepository = (*StockPositionRepo)(nil)

// StockPositionRepo implementação de StockPositionRepository sobre PostgreSQL
// (usável com pool ou tx).
type StockPositionRepo struct {
	q Querier
}

// NewStockPositionRepository constrói o adaptador de posições. Passar pool ou tx (Querier).
func NewStockPositionRepository(q Querier) *StockPositionRepo {
	return &StockPositionRepo{q: q}
}

// Get devolve a posição de um produto numa empresa; zerada se não existir.
func (r *StockPositionRepo) Get(ctx context.Context, companyID, productID string) (*entity.StockPosition, error) {
	query := `
		SELECT company_id, product_id, quantity, average_cost, updated_at
		FROM stock_positions WHERE company_id = $1 AND product_id = $2`
	var p entity.StockPosition
	err := r.q.QueryRow(ctx, query, companyID, productID).Scan(
		&p.CompanyID, &p.ProductID, &p.Quantity, &p.AverageCost, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockPosition{CompanyID: companyID, ProductID: productID, AverageCost: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get position: %w", err)
	}
	return &p, nil
}

// GetForUpdate devolve a posição bloqueando a linha (SELECT FOR UPDATE).
// Posição inexistente devolve zerada sem bloqueio; a serialização do primeiro
// movimento fica por conta da constraint de chave primária no Upsert.
func (r *StockPositionRepo) GetForUpdate(ctx context.Context, companyID, productID string) (*entity.StockPosition, error) {
	query := `
		SELECT company_id, product_id, quantity, average_cost, updated_at
		FROM stock_positions WHERE company_id = $1 AND product_id = $2
		FOR UPDATE`
	var p entity.StockPosition
	err := r.q.QueryRow(ctx, query, companyID, productID).Scan(
		&p.CompanyID, &p.ProductID, &p.Quantity, &p.AverageCost, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockPosition{CompanyID: companyID, ProductID: productID, AverageCost: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get position for update: %w", err)
	}
	return &p, nil
}

// Upsert insere ou atualiza a posição por (empresa, produto).
func (r *StockPositionRepo) Upsert(ctx context.Context, position *entity.StockPosition) error {
	query := `
		INSERT INTO stock_positions (company_id, product_id, quantity, average_cost, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (company_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, average_cost = EXCLUDED.average_cost, updated_at = now()`
	_, err := r.q.Exec(ctx, query, position.CompanyID, position.ProductID, position.Quantity, position.AverageCost)
	if err != nil {
		return fmt.Errorf("upsert position: %w", err)
	}
	return nil
}

// ListByProduct lista as posições de um produto em todas as empresas.
func (r *StockPositionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockPosition, error) {
	query := `
		SELECT company_id, product_id, quantity, average_cost, updated_at
		FROM stock_positions WHERE product_id = $1 ORDER BY company_id`
	return r.list(ctx, query, productID)
}

// ListByCompany lista as posições de uma empresa.
func (r *StockPositionRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.StockPosition, error) {
	query := `
		SELECT company_id, product_id, quantity, average_cost, updated_at
		FROM stock_positions WHERE company_id = $1 ORDER BY product_id`
	return r.list(ctx, query, companyID)
}

// ListAll lista todas as posições (valoração de inventário).
func (r *StockPositionRepo) ListAll(ctx context.Context) ([]*entity.StockPosition, error) {
	query := `
		SELECT company_id, product_id, quantity, average_cost, updated_at
		FROM stock_positions ORDER BY company_id, product_id`
	return r.list(ctx, query)
}

// CountByCompany conta as posições que referenciam uma empresa.
func (r *StockPositionRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_positions WHERE company_id = $1`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count positions: %w", err)
	}
	return n, nil
}

func (r *StockPositionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockPosition, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockPosition
	for rows.Next() {
		var p entity.StockPosition
		if err := rows.Scan(&p.CompanyID, &p.ProductID, &p.Quantity, &p.AverageCost, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

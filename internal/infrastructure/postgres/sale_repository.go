package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementação de SaleRepository (usável com pool ou tx). O índice
// único de external_order_id é a guarda definitiva de idempotência da
// importação.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, external_order_id, company_id, gross_amount, fee_amount, net_amount, profit, created_at`

// Create insere a venda; pedido já importado devolve ErrDuplicateSale.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, external_order_id, company_id, gross_amount, fee_amount, net_amount, profit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.ExternalOrderID, sale.CompanyID,
		sale.GrossAmount, sale.FeeAmount, sale.NetAmount, sale.Profit,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("pedido %s: %w", sale.ExternalOrderID, domain.ErrDuplicateSale)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByExternalOrderID obtém uma venda pelo id do pedido no canal.
func (r *SaleRepo) GetByExternalOrderID(ctx context.Context, externalOrderID string) (*entity.Sale, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales WHERE external_order_id = $1`, saleColumns)
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, externalOrderID).Scan(
		&s.ID, &s.ExternalOrderID, &s.CompanyID,
		&s.GrossAmount, &s.FeeAmount, &s.NetAmount, &s.Profit, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// UpdateProfit grava o lucro bruto calculado com os custos médios pré-baixa.
func (r *SaleRepo) UpdateProfit(ctx context.Context, id string, profit decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE sales SET profit = $2 WHERE id = $1`, id, profit)
	if err != nil {
		return fmt.Errorf("update sale profit: %w", err)
	}
	return nil
}

// List lista as vendas importadas, mais recentes primeiro.
func (r *SaleRepo) List(ctx context.Context, limit int) ([]*entity.Sale, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales ORDER BY created_at DESC LIMIT $1`, saleColumns)
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ExternalOrderID, &s.CompanyID,
			&s.GrossAmount, &s.FeeAmount, &s.NetAmount, &s.Profit, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

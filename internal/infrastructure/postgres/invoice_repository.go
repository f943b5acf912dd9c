package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementação de InvoiceRepository (usável com pool ou tx).
// As linhas da nota são gravadas como JSONB junto com o cabeçalho: a nota é
// imutável depois de preparada, então um insert único mantém a preparação
// atômica sem transação.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// invoiceItemRow é a forma JSONB de uma linha.
type invoiceItemRow struct {
	Code        string `json:"code"`
	Barcode     string `json:"barcode,omitempty"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

// Create persiste a nota preparada com suas linhas.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	items, err := marshalItems(invoice.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO invoices (id, number, company_id, supplier_name, supplier_cnpj, out_of_state, items, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	_, err = r.q.Exec(ctx, query,
		invoice.ID, invoice.Number, invoice.CompanyID, invoice.SupplierName, invoice.SupplierCNPJ,
		invoice.OutOfState, items, invoice.Total, invoice.Status,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtém uma nota completa por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtém a nota bloqueando a linha do cabeçalho (SELECT FOR UPDATE).
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, id, true)
}

func (r *InvoiceRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Invoice, error) {
	query := `
		SELECT id, number, company_id, supplier_name, supplier_cnpj, out_of_state, items, total, status, created_at, processed_at
		FROM invoices WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var inv entity.Invoice
	var items []byte
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.Number, &inv.CompanyID, &inv.SupplierName, &inv.SupplierCNPJ,
		&inv.OutOfState, &items, &inv.Total, &inv.Status, &inv.CreatedAt, &inv.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv.Items, err = unmarshalItems(items); err != nil {
		return nil, err
	}
	return &inv, nil
}

// List lista notas por status (vazio lista todas), mais recentes primeiro.
func (r *InvoiceRepo) List(ctx context.Context, status string) ([]*entity.Invoice, error) {
	query := `
		SELECT id, number, company_id, supplier_name, supplier_cnpj, out_of_state, items, total, status, created_at, processed_at
		FROM invoices`
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		var items []byte
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.CompanyID, &inv.SupplierName, &inv.SupplierCNPJ,
			&inv.OutOfState, &items, &inv.Total, &inv.Status, &inv.CreatedAt, &inv.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		if inv.Items, err = unmarshalItems(items); err != nil {
			return nil, err
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// MarkProcessed marca a nota como processada.
func (r *InvoiceRepo) MarkProcessed(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = $2, processed_at = now() WHERE id = $1`,
		id, entity.InvoiceProcessed,
	)
	if err != nil {
		return fmt.Errorf("mark invoice processed: %w", err)
	}
	return nil
}

// Delete remove a nota.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func marshalItems(items []entity.InvoiceItem) ([]byte, error) {
	rows := make([]invoiceItemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, invoiceItemRow{
			Code:        it.Code,
			Barcode:     it.Barcode,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.String(),
		})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal invoice items: %w", err)
	}
	return b, nil
}

func unmarshalItems(b []byte) ([]entity.InvoiceItem, error) {
	var rows []invoiceItemRow
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal invoice items: %w", err)
	}
	items := make([]entity.InvoiceItem, 0, len(rows))
	for _, row := range rows {
		price, err := decimalFromString(row.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("unmarshal invoice items: %w", err)
		}
		items = append(items, entity.InvoiceItem{
			Code:        row.Code,
			Barcode:     row.Barcode,
			Description: row.Description,
			Quantity:    row.Quantity,
			UnitPrice:   price,
		})
	}
	return items, nil
}

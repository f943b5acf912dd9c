package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
	"github.com/Gerotto1967/gestao-api/pkg/textutil"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementação do porto ProductRepository sobre PostgreSQL
// (usável com pool ou tx). Mantém a coluna name_search com nome e SKU
// normalizados para busca insensível a acentos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de catálogo. Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, COALESCE(barcode, ''), name, category, unit, out_of_state, sell_price, created_at, updated_at`

// Create persiste um novo produto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, barcode, name, category, unit, out_of_state, sell_price, name_search, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SKU, nullIfEmpty(product.Barcode), product.Name, product.Category,
		product.Unit, product.OutOfState, product.SellPrice, searchKey(product),
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getBy(ctx, "id", id)
}

// GetBySKU obtém um produto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getBy(ctx, "sku", sku)
}

// GetByBarcode obtém um produto por código de barras.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	return r.getBy(ctx, "barcode", barcode)
}

func (r *ProductRepo) getBy(ctx context.Context, column, value string) (*entity.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s = $1`, productColumns, column)
	var p entity.Product
	err := r.q.QueryRow(ctx, query, value).Scan(
		&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Category, &p.Unit,
		&p.OutOfState, &p.SellPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by %s: %w", column, err)
	}
	return &p, nil
}

// Update atualiza um produto existente. SKU é imutável após a criação.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET barcode = $2, name = $3, category = $4, unit = $5, out_of_state = $6,
		    sell_price = $7, name_search = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, nullIfEmpty(product.Barcode), product.Name, product.Category, product.Unit,
		product.OutOfState, product.SellPrice, searchKey(product), product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista o catálogo com paginação; filter casa contra name_search.
// limit <= 0 devolve o catálogo inteiro (exportação ao marketplace).
func (r *ProductRepo) List(ctx context.Context, filter string, limit, offset int) ([]*entity.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products`, productColumns)
	var args []any
	if filter != "" {
		query += ` WHERE name_search LIKE '%' || $1 || '%'`
		args = append(args, textutil.Normalize(filter))
	}
	query += ` ORDER BY name`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Category, &p.Unit,
			&p.OutOfState, &p.SellPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count conta os produtos do catálogo.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Delete remove um produto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func searchKey(p *entity.Product) string {
	return textutil.Normalize(p.Name + " " + p.SKU)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

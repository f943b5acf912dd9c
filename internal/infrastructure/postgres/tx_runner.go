package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gerotto1967/gestao-api/internal/application/finance"
	"github.com/Gerotto1967/gestao-api/internal/application/invoicing"
	"github.com/Gerotto1967/gestao-api/internal/application/marketplace"
	"github.com/Gerotto1967/gestao-api/internal/application/stock"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)
var _ invoicing.TxRunner = (*TxRunner)(nil)
var _ marketplace.TxRunner = (*TxRunner)(nil)
var _ finance.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL, com os
// repositórios atados à transação.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre uma transação com os repositórios do ledger de estoque e faz
// Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	posRepo repository.StockPositionRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockPositionRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunIngestion abre uma transação com os repositórios do processamento de
// notas fiscais (estoque, nota, financeiro e catálogo).
func (r *TxRunner) RunIngestion(ctx context.Context, fn func(
	posRepo repository.StockPositionRepository,
	movRepo repository.StockMovementRepository,
	invoiceRepo repository.InvoiceRepository,
	entryRepo repository.AccountEntryRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewStockPositionRepository(tx),
		NewStockMovementRepository(tx),
		NewInvoiceRepository(tx),
		NewAccountEntryRepository(tx),
		NewProductRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale abre uma transação com os repositórios da importação de vendas.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	posRepo repository.StockPositionRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	entryRepo repository.AccountEntryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewStockPositionRepository(tx),
		NewStockMovementRepository(tx),
		NewSaleRepository(tx),
		NewAccountEntryRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSettlement abre uma transação com os repositórios da baixa financeira.
func (r *TxRunner) RunSettlement(ctx context.Context, fn func(
	entryRepo repository.AccountEntryRepository,
	bankRepo repository.BankAccountRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAccountEntryRepository(tx), NewBankAccountRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Package memrepo fornece implementações em memória dos portos de
// persistência, para testes dos casos de uso sem banco de dados. As
// implementações reproduzem o contrato dos repositórios Postgres: nil em
// not-found, posição zerada em vez de nil, ErrDuplicateSale no índice único
// de pedido. Não há transação real: o TxRunner apenas repassa os
// repositórios compartilhados, e os testes exercitam os guard clauses que
// abortam antes de qualquer mutação.
package memrepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
	"github.com/Gerotto1967/gestao-api/pkg/textutil"
)

// Store guarda todo o estado em memória. Os repositórios são visões tipadas
// sobre o mesmo Store, como os repositórios Postgres são visões sobre o
// mesmo pool.
type Store struct {
	positions map[string]entity.StockPosition // chave companyID|productID
	movements []entity.StockMovement
	invoices  map[string]entity.Invoice
	entries   map[string]entity.AccountEntry
	banks     map[string]entity.BankAccount
	sales     map[string]entity.Sale
	products  map[string]entity.Product
	companies map[string]entity.Company
	suppliers map[string]entity.Supplier
	customers map[string]entity.Customer
	users     map[string]entity.User
}

// NewStore constrói um Store vazio.
func NewStore() *Store {
	return &Store{
		positions: map[string]entity.StockPosition{},
		invoices:  map[string]entity.Invoice{},
		entries:   map[string]entity.AccountEntry{},
		banks:     map[string]entity.BankAccount{},
		sales:     map[string]entity.Sale{},
		products:  map[string]entity.Product{},
		companies: map[string]entity.Company{},
		suppliers: map[string]entity.Supplier{},
		customers: map[string]entity.Customer{},
		users:     map[string]entity.User{},
	}
}

func posKey(companyID, productID string) string { return companyID + "|" + productID }

// Seed helpers: inserção direta, sem passar pelos repositórios.

// SeedCompany insere uma empresa.
func (s *Store) SeedCompany(c entity.Company) { s.companies[c.ID] = c }

// SeedProduct insere um produto.
func (s *Store) SeedProduct(p entity.Product) { s.products[p.ID] = p }

// SeedPosition insere uma posição de estoque.
func (s *Store) SeedPosition(p entity.StockPosition) {
	s.positions[posKey(p.CompanyID, p.ProductID)] = p
}

// SeedInvoice insere uma nota.
func (s *Store) SeedInvoice(inv entity.Invoice) { s.invoices[inv.ID] = inv }

// SeedEntry insere um lançamento.
func (s *Store) SeedEntry(e entity.AccountEntry) { s.entries[e.ID] = e }

// SeedBank insere uma conta bancária.
func (s *Store) SeedBank(b entity.BankAccount) { s.banks[b.ID] = b }

// SeedSale insere uma venda.
func (s *Store) SeedSale(sale entity.Sale) { s.sales[sale.ID] = sale }

// Inspeção direta do estado, para asserções.

// Position devolve a posição armazenada (zerada se ausente).
func (s *Store) Position(companyID, productID string) entity.StockPosition {
	if p, ok := s.positions[posKey(companyID, productID)]; ok {
		return p
	}
	return entity.StockPosition{CompanyID: companyID, ProductID: productID, AverageCost: decimal.Zero}
}

// Movements devolve todos os movimentos gravados, na ordem de gravação.
func (s *Store) Movements() []entity.StockMovement { return s.movements }

// Entries devolve todos os lançamentos gravados.
func (s *Store) Entries() []entity.AccountEntry {
	out := make([]entity.AccountEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Invoice devolve uma nota pelo id (zero value se ausente).
func (s *Store) Invoice(id string) entity.Invoice { return s.invoices[id] }

// Bank devolve uma conta bancária pelo id.
func (s *Store) Bank(id string) entity.BankAccount { return s.banks[id] }

// Sale devolve uma venda pelo id.
func (s *Store) Sale(id string) entity.Sale { return s.sales[id] }

// ─────────────────────────────────────────────────────────────────────────────
// TxRunner: repassa os repositórios do Store. Sem rollback; os testes de
// aborto verificam que os guard clauses disparam antes de qualquer escrita.
// ─────────────────────────────────────────────────────────────────────────────

// TxRunner implementa os portos transacionais dos casos de uso.
type TxRunner struct{ s *Store }

// NewTxRunner constrói o runner sobre o Store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run executa fn com os repositórios do ledger.
func (t *TxRunner) Run(ctx context.Context, fn func(
	posRepo repository.StockPositionRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(NewPositionRepo(t.s), NewMovementRepo(t.s))
}

// RunIngestion executa fn com os repositórios do processamento de notas.
func (t *TxRunner) RunIngestion(ctx context.Context, fn func(
	posRepo repository.StockPositionRepository,
	movRepo repository.StockMovementRepository,
	invoiceRepo repository.InvoiceRepository,
	entryRepo repository.AccountEntryRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(NewPositionRepo(t.s), NewMovementRepo(t.s), NewInvoiceRepo(t.s), NewEntryRepo(t.s), NewProductRepo(t.s))
}

// RunSale executa fn com os repositórios da importação de vendas.
func (t *TxRunner) RunSale(ctx context.Context, fn func(
	posRepo repository.StockPositionRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	entryRepo repository.AccountEntryRepository,
) error) error {
	return fn(NewPositionRepo(t.s), NewMovementRepo(t.s), NewSaleRepo(t.s), NewEntryRepo(t.s))
}

// RunSettlement executa fn com os repositórios da baixa financeira.
func (t *TxRunner) RunSettlement(ctx context.Context, fn func(
	entryRepo repository.AccountEntryRepository,
	bankRepo repository.BankAccountRepository,
) error) error {
	return fn(NewEntryRepo(t.s), NewBankRepo(t.s))
}

// ─────────────────────────────────────────────────────────────────────────────
// Posições e movimentos
// ─────────────────────────────────────────────────────────────────────────────

// PositionRepo implementa repository.StockPositionRepository.
type PositionRepo struct{ s *Store }

// NewPositionRepo constrói o repositório de posições.
func NewPositionRepo(s *Store) *PositionRepo { return &PositionRepo{s: s} }

func (r *PositionRepo) Get(ctx context.Context, companyID, productID string) (*entity.StockPosition, error) {
	p := r.s.Position(companyID, productID)
	return &p, nil
}

func (r *PositionRepo) GetForUpdate(ctx context.Context, companyID, productID string) (*entity.StockPosition, error) {
	return r.Get(ctx, companyID, productID)
}

func (r *PositionRepo) Upsert(ctx context.Context, position *entity.StockPosition) error {
	r.s.positions[posKey(position.CompanyID, position.ProductID)] = *position
	return nil
}

func (r *PositionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockPosition, error) {
	return r.list(func(p entity.StockPosition) bool { return p.ProductID == productID })
}

func (r *PositionRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.StockPosition, error) {
	return r.list(func(p entity.StockPosition) bool { return p.CompanyID == companyID })
}

func (r *PositionRepo) ListAll(ctx context.Context) ([]*entity.StockPosition, error) {
	return r.list(func(entity.StockPosition) bool { return true })
}

func (r *PositionRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	found, _ := r.list(func(p entity.StockPosition) bool { return p.CompanyID == companyID })
	return len(found), nil
}

func (r *PositionRepo) list(match func(entity.StockPosition) bool) ([]*entity.StockPosition, error) {
	var out []*entity.StockPosition
	for _, p := range r.s.positions {
		if match(p) {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return posKey(out[i].CompanyID, out[i].ProductID) < posKey(out[j].CompanyID, out[j].ProductID)
	})
	return out, nil
}

// MovementRepo implementa repository.StockMovementRepository.
type MovementRepo struct{ s *Store }

// NewMovementRepo constrói o repositório de movimentos.
func NewMovementRepo(s *Store) *MovementRepo { return &MovementRepo{s: s} }

func (r *MovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

func (r *MovementRepo) ListByKey(ctx context.Context, companyID, productID string, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0 && len(out) < limit; i-- {
		m := r.s.movements[i]
		if m.CompanyID == companyID && m.ProductID == productID {
			cp := m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MovementRepo) SumDeltaByKey(ctx context.Context, companyID, productID string) (int64, error) {
	var sum int64
	for _, m := range r.s.movements {
		if m.CompanyID == companyID && m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Notas fiscais
// ─────────────────────────────────────────────────────────────────────────────

// InvoiceRepo implementa repository.InvoiceRepository.
type InvoiceRepo struct{ s *Store }

// NewInvoiceRepo constrói o repositório de notas.
func NewInvoiceRepo(s *Store) *InvoiceRepo { return &InvoiceRepo{s: s} }

func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	r.s.invoices[invoice.ID] = *invoice
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if inv, ok := r.s.invoices[id]; ok {
		cp := inv
		return &cp, nil
	}
	return nil, nil
}

func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *InvoiceRepo) List(ctx context.Context, status string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if status == "" || inv.Status == status {
			cp := inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InvoiceRepo) MarkProcessed(ctx context.Context, id string) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return fmt.Errorf("nota %s: %w", id, domain.ErrNotFound)
	}
	now := time.Now()
	inv.Status = entity.InvoiceProcessed
	inv.ProcessedAt = &now
	r.s.invoices[id] = inv
	return nil
}

func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	delete(r.s.invoices, id)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Financeiro
// ─────────────────────────────────────────────────────────────────────────────

// EntryRepo implementa repository.AccountEntryRepository.
type EntryRepo struct{ s *Store }

// NewEntryRepo constrói o repositório de lançamentos.
func NewEntryRepo(s *Store) *EntryRepo { return &EntryRepo{s: s} }

func (r *EntryRepo) Create(ctx context.Context, entry *entity.AccountEntry) error {
	r.s.entries[entry.ID] = *entry
	return nil
}

func (r *EntryRepo) GetByID(ctx context.Context, id string) (*entity.AccountEntry, error) {
	if e, ok := r.s.entries[id]; ok {
		cp := e
		return &cp, nil
	}
	return nil, nil
}

func (r *EntryRepo) GetForUpdate(ctx context.Context, id string) (*entity.AccountEntry, error) {
	return r.GetByID(ctx, id)
}

func (r *EntryRepo) List(ctx context.Context, status string) ([]*entity.AccountEntry, error) {
	var out []*entity.AccountEntry
	for _, e := range r.s.entries {
		if status == "" || e.Status == status {
			cp := e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *EntryRepo) MarkSettled(ctx context.Context, id, bankAccountID string, settledAt time.Time) error {
	e, ok := r.s.entries[id]
	if !ok {
		return fmt.Errorf("lançamento %s: %w", id, domain.ErrNotFound)
	}
	e.Status = entity.EntrySettled
	e.BankAccountID = bankAccountID
	e.SettledAt = &settledAt
	r.s.entries[id] = e
	return nil
}

func (r *EntryRepo) SumPendingByType(ctx context.Context, entryType string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.s.entries {
		if e.Type == entryType && e.Status == entity.EntryPending {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (r *EntryRepo) SumByTypeBetween(ctx context.Context, entryType string, start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.s.entries {
		if e.Type == entryType && !e.DueDate.Before(start) && e.DueDate.Before(end) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (r *EntryRepo) MonthlyTotals(ctx context.Context, limit int) ([]repository.MonthlyTotal, error) {
	type key struct {
		year, month int
		typ         string
	}
	acc := map[key]*repository.MonthlyTotal{}
	for _, e := range r.s.entries {
		k := key{e.DueDate.Year(), int(e.DueDate.Month()), e.Type}
		row, ok := acc[k]
		if !ok {
			row = &repository.MonthlyTotal{Year: k.year, Month: k.month, Type: k.typ, Total: decimal.Zero}
			acc[k] = row
		}
		row.Total = row.Total.Add(e.Amount)
		row.Count++
	}
	var out []repository.MonthlyTotal
	for _, row := range acc {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].Type < out[j].Type
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// BankRepo implementa repository.BankAccountRepository.
type BankRepo struct{ s *Store }

// NewBankRepo constrói o repositório de contas bancárias.
func NewBankRepo(s *Store) *BankRepo { return &BankRepo{s: s} }

func (r *BankRepo) Create(ctx context.Context, account *entity.BankAccount) error {
	r.s.banks[account.ID] = *account
	return nil
}

func (r *BankRepo) GetByID(ctx context.Context, id string) (*entity.BankAccount, error) {
	if b, ok := r.s.banks[id]; ok {
		cp := b
		return &cp, nil
	}
	return nil, nil
}

func (r *BankRepo) GetForUpdate(ctx context.Context, id string) (*entity.BankAccount, error) {
	return r.GetByID(ctx, id)
}

func (r *BankRepo) List(ctx context.Context) ([]*entity.BankAccount, error) {
	var out []*entity.BankAccount
	for _, b := range r.s.banks {
		cp := b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *BankRepo) Update(ctx context.Context, account *entity.BankAccount) error {
	b, ok := r.s.banks[account.ID]
	if !ok {
		return fmt.Errorf("conta %s: %w", account.ID, domain.ErrNotFound)
	}
	b.Name = account.Name
	b.Bank = account.Bank
	b.Active = account.Active
	r.s.banks[account.ID] = b
	return nil
}

func (r *BankRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	b, ok := r.s.banks[id]
	if !ok {
		return fmt.Errorf("conta %s: %w", id, domain.ErrNotFound)
	}
	b.Balance = balance
	r.s.banks[id] = b
	return nil
}

func (r *BankRepo) SumBalances(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range r.s.banks {
		if b.Active {
			total = total.Add(b.Balance)
		}
	}
	return total, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Vendas do marketplace
// ─────────────────────────────────────────────────────────────────────────────

// SaleRepo implementa repository.SaleRepository.
type SaleRepo struct{ s *Store }

// NewSaleRepo constrói o repositório de vendas.
func NewSaleRepo(s *Store) *SaleRepo { return &SaleRepo{s: s} }

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	for _, existing := range r.s.sales {
		if existing.ExternalOrderID == sale.ExternalOrderID {
			return fmt.Errorf("pedido %s: %w", sale.ExternalOrderID, domain.ErrDuplicateSale)
		}
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) GetByExternalOrderID(ctx context.Context, externalOrderID string) (*entity.Sale, error) {
	for _, s := range r.s.sales {
		if s.ExternalOrderID == externalOrderID {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *SaleRepo) UpdateProfit(ctx context.Context, id string, profit decimal.Decimal) error {
	s, ok := r.s.sales[id]
	if !ok {
		return fmt.Errorf("venda %s: %w", id, domain.ErrNotFound)
	}
	s.Profit = profit
	r.s.sales[id] = s
	return nil
}

func (r *SaleRepo) List(ctx context.Context, limit int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		cp := s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Catálogo e cadastros
// ─────────────────────────────────────────────────────────────────────────────

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ s *Store }

// NewProductRepo constrói o repositório de produtos.
func NewProductRepo(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	for _, existing := range r.s.products {
		if existing.SKU == product.SKU {
			return fmt.Errorf("sku %s: %w", product.SKU, domain.ErrDuplicate)
		}
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.find(func(p entity.Product) bool { return p.SKU == sku })
}

func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	return r.find(func(p entity.Product) bool { return p.Barcode == barcode })
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if _, ok := r.s.products[product.ID]; !ok {
		return fmt.Errorf("produto %s: %w", product.ID, domain.ErrNotFound)
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) List(ctx context.Context, filter string, limit, offset int) ([]*entity.Product, error) {
	needle := textutil.Normalize(filter)
	var out []*entity.Product
	for _, p := range r.s.products {
		if needle == "" || strings.Contains(textutil.Normalize(p.Name+" "+p.SKU), needle) {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) { return len(r.s.products), nil }

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) find(match func(entity.Product) bool) (*entity.Product, error) {
	for _, p := range r.s.products {
		if match(p) {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

// CompanyRepo implementa repository.CompanyRepository.
type CompanyRepo struct{ s *Store }

// NewCompanyRepo constrói o repositório de empresas.
func NewCompanyRepo(s *Store) *CompanyRepo { return &CompanyRepo{s: s} }

func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	for _, existing := range r.s.companies {
		if existing.CNPJ == company.CNPJ {
			return fmt.Errorf("cnpj %s: %w", company.CNPJ, domain.ErrDuplicate)
		}
	}
	r.s.companies[company.ID] = *company
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	if c, ok := r.s.companies[id]; ok {
		cp := c
		return &cp, nil
	}
	return nil, nil
}

func (r *CompanyRepo) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Company, error) {
	for _, c := range r.s.companies {
		if c.CNPJ == cnpj {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.s.companies {
		cp := c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	c, ok := r.s.companies[company.ID]
	if !ok {
		return fmt.Errorf("empresa %s: %w", company.ID, domain.ErrNotFound)
	}
	c.Name = company.Name
	c.Active = company.Active
	r.s.companies[company.ID] = c
	return nil
}

func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	for _, p := range r.s.positions {
		if p.CompanyID == id {
			return fmt.Errorf("empresa %s: %w", id, domain.ErrCompanyInUse)
		}
	}
	delete(r.s.companies, id)
	return nil
}

// SupplierRepo implementa repository.SupplierRepository.
type SupplierRepo struct{ s *Store }

// NewSupplierRepo constrói o repositório de fornecedores.
func NewSupplierRepo(s *Store) *SupplierRepo { return &SupplierRepo{s: s} }

func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	if s, ok := r.s.suppliers[id]; ok {
		cp := s
		return &cp, nil
	}
	return nil, nil
}

func (r *SupplierRepo) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Supplier, error) {
	for _, s := range r.s.suppliers {
		if s.CNPJ == cnpj {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.s.suppliers {
		cp := s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return fmt.Errorf("fornecedor %s: %w", supplier.ID, domain.ErrNotFound)
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	delete(r.s.suppliers, id)
	return nil
}

func (r *SupplierRepo) Count(ctx context.Context) (int, error) { return len(r.s.suppliers), nil }

// CustomerRepo implementa repository.CustomerRepository.
type CustomerRepo struct{ s *Store }

// NewCustomerRepo constrói o repositório de clientes.
func NewCustomerRepo(s *Store) *CustomerRepo { return &CustomerRepo{s: s} }

func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	if c, ok := r.s.customers[id]; ok {
		cp := c
		return &cp, nil
	}
	return nil, nil
}

func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		cp := c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	if _, ok := r.s.customers[customer.ID]; !ok {
		return fmt.Errorf("cliente %s: %w", customer.ID, domain.ErrNotFound)
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	delete(r.s.customers, id)
	return nil
}

func (r *CustomerRepo) Count(ctx context.Context) (int, error) { return len(r.s.customers), nil }

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

// NewUserRepo constrói o repositório de usuários.
func NewUserRepo(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return fmt.Errorf("usuário %s: %w", user.Username, domain.ErrDuplicate)
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

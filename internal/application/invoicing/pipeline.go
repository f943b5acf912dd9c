// Package invoicing implementa o pipeline de ingestão de notas fiscais de
// fornecedor: STAGED -> PROCESSED (terminal), com efeito exatamente-uma-vez
// por nota. O processamento transforma a nota em movimentos PURCHASE no
// ledger mais uma conta a pagar, tudo-ou-nada.
package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	appstock "github.com/Gerotto1967/gestao-api/internal/application/stock"
	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

// icmsFactor é o adicional de 6% de ICMS sobre compras de fora do estado.
// Aplicado aqui, no custo efetivo, antes de chamar o ledger: o ledger não
// conhece política tributária.
var icmsFactor = decimal.NewFromFloat(1.06)

// Config políticas do pipeline.
type Config struct {
	// AutoCreateProducts cria produto a partir da linha quando o código não
	// resolve no catálogo. Desligado por padrão: linha desconhecida aborta a
	// nota inteira com ErrUnknownProduct.
	AutoCreateProducts bool
}

// Pipeline prepara e processa notas fiscais de entrada.
type Pipeline struct {
	txRunner    TxRunner
	companyRepo repository.CompanyRepository
	invoiceRepo repository.InvoiceRepository
	cfg         Config
}

// NewPipeline constrói o pipeline.
func NewPipeline(txRunner TxRunner, companyRepo repository.CompanyRepository, invoiceRepo repository.InvoiceRepository, cfg Config) *Pipeline {
	return &Pipeline{txRunner: txRunner, companyRepo: companyRepo, invoiceRepo: invoiceRepo, cfg: cfg}
}

// Stage valida a nota normalizada e a persiste como STAGED. Nenhum efeito no
// ledger: nota malformada é rejeitada aqui, antes de qualquer mutação.
func (p *Pipeline) Stage(ctx context.Context, in dto.StageInvoiceRequest) (*entity.Invoice, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("nota sem itens: %w", domain.ErrInvalidInput)
	}
	for i, item := range in.Items {
		if item.Code == "" {
			return nil, fmt.Errorf("item %d sem código: %w", i+1, domain.ErrInvalidInput)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %s quantidade %d: %w", item.Code, item.Quantity, domain.ErrInvalidQuantity)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("item %s preço %s: %w", item.Code, item.UnitPrice, domain.ErrInvalidCost)
		}
	}
	company, err := p.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil || company == nil {
		return nil, fmt.Errorf("empresa %s: %w", in.CompanyID, domain.ErrUnknownCompany)
	}
	if !company.Active {
		return nil, fmt.Errorf("empresa %s inativa: %w", company.CNPJ, domain.ErrInvalidInput)
	}

	items := make([]entity.InvoiceItem, len(in.Items))
	total := decimal.Zero
	for i, item := range in.Items {
		items[i] = entity.InvoiceItem{
			Code:        item.Code,
			Barcode:     item.Barcode,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
		total = total.Add(items[i].LineTotal())
	}

	inv := &entity.Invoice{
		ID:           uuid.New().String(),
		Number:       in.Number,
		CompanyID:    in.CompanyID,
		SupplierName: in.SupplierName,
		SupplierCNPJ: in.SupplierCNPJ,
		OutOfState:   in.OutOfState,
		Items:        items,
		Total:        total,
		Status:       entity.InvoiceStaged,
		CreatedAt:    time.Now(),
	}
	if err := p.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("preparar nota %s: %w", in.Number, err)
	}
	return inv, nil
}

// Process aplica a nota inteira numa única transação: bloqueia o cabeçalho
// (guarda de idempotência), resolve cada linha no catálogo, aplica um
// movimento PURCHASE por linha com o custo efetivo (preço x 1.06 quando
// fornecedor ou produto é de fora do estado), lança a conta a pagar e marca
// PROCESSED por último. Qualquer falha faz rollback completo e a nota
// permanece STAGED (re-tentável após corrigir o catálogo).
func (p *Pipeline) Process(ctx context.Context, invoiceID, actor string) (*dto.ProcessingResult, error) {
	var result *dto.ProcessingResult
	err := p.txRunner.RunIngestion(ctx, func(
		posRepo repository.StockPositionRepository,
		movRepo repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		entryRepo repository.AccountEntryRepository,
		productRepo repository.ProductRepository,
	) error {
		inv, err := invoiceRepo.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("nota %s: %w", invoiceID, domain.ErrNotFound)
		}
		if inv.Status != entity.InvoiceStaged {
			return fmt.Errorf("nota %s: %w", invoiceID, domain.ErrAlreadyProcessed)
		}

		// Resolve todas as linhas antes de mover qualquer coisa: linha
		// desconhecida aborta a nota inteira.
		products := make([]*entity.Product, len(inv.Items))
		for i, item := range inv.Items {
			product, err := resolveProduct(ctx, productRepo, item)
			if err != nil {
				return err
			}
			if product == nil {
				if !p.cfg.AutoCreateProducts {
					return fmt.Errorf("nota %s item %s: %w", inv.Number, item.Code, domain.ErrUnknownProduct)
				}
				product, err = createFromItem(ctx, productRepo, item)
				if err != nil {
					return err
				}
			}
			products[i] = product
		}

		docRef := "NF-" + inv.Number
		total := decimal.Zero
		for i, item := range inv.Items {
			cost := item.UnitPrice
			if inv.OutOfState || products[i].OutOfState {
				cost = cost.Mul(icmsFactor)
			}
			unitCost := cost
			if _, err := appstock.ApplyMovementTx(ctx, posRepo, movRepo, appstock.MovementInput{
				CompanyID: inv.CompanyID,
				ProductID: products[i].ID,
				Kind:      entity.MovementPurchase,
				Quantity:  item.Quantity,
				UnitCost:  &unitCost,
				Reference: docRef,
				Actor:     actor,
			}); err != nil {
				return err
			}
			total = total.Add(cost.Mul(decimal.NewFromInt(item.Quantity)))
		}

		entry := &entity.AccountEntry{
			ID:           uuid.New().String(),
			Type:         entity.EntryPayable,
			Description:  "NF " + inv.Number + " - " + inv.SupplierName,
			Amount:       total,
			DueDate:      time.Now(),
			Status:       entity.EntryPending,
			Counterparty: inv.SupplierName,
			SourceRef:    inv.ID,
			CreatedAt:    time.Now(),
		}
		if err := entryRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("conta a pagar da nota %s: %w", inv.Number, err)
		}

		if err := invoiceRepo.MarkProcessed(ctx, inv.ID); err != nil {
			return err
		}
		result = &dto.ProcessingResult{
			InvoiceID:     inv.ID,
			Movements:     len(inv.Items),
			PayableAmount: total,
			PayableID:     entry.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Discard remove uma nota STAGED (inspeção livre antes do processamento).
func (p *Pipeline) Discard(ctx context.Context, invoiceID string) error {
	inv, err := p.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv == nil {
		return fmt.Errorf("nota %s: %w", invoiceID, domain.ErrNotFound)
	}
	if inv.Status != entity.InvoiceStaged {
		return fmt.Errorf("nota %s: %w", invoiceID, domain.ErrAlreadyProcessed)
	}
	return p.invoiceRepo.Delete(ctx, invoiceID)
}

// List devolve notas por status (vazio = todas).
func (p *Pipeline) List(ctx context.Context, status string) ([]*entity.Invoice, error) {
	return p.invoiceRepo.List(ctx, status)
}

// Get devolve uma nota pelo id.
func (p *Pipeline) Get(ctx context.Context, invoiceID string) (*entity.Invoice, error) {
	inv, err := p.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("nota %s: %w", invoiceID, domain.ErrNotFound)
	}
	return inv, nil
}

// resolveProduct busca por código (SKU) e depois por código de barras.
func resolveProduct(ctx context.Context, productRepo repository.ProductRepository, item entity.InvoiceItem) (*entity.Product, error) {
	product, err := productRepo.GetBySKU(ctx, item.Code)
	if err != nil {
		return nil, err
	}
	if product != nil {
		return product, nil
	}
	if item.Barcode == "" {
		return nil, nil
	}
	return productRepo.GetByBarcode(ctx, item.Barcode)
}

// createFromItem cadastra o produto a partir da linha (política opt-in).
func createFromItem(ctx context.Context, productRepo repository.ProductRepository, item entity.InvoiceItem) (*entity.Product, error) {
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       item.Code,
		Barcode:   item.Barcode,
		Name:      item.Description,
		Unit:      "UN",
		SellPrice: decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("auto-cadastro do item %s: %w", item.Code, err)
	}
	return product, nil
}

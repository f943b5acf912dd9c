// Package marketplace implementa a integração com o canal Upseller: exporta o
// catálogo consolidado multi-empresa e importa eventos de venda, baixando o
// estoque da empresa vendedora e lançando a receber + taxa do canal.
package marketplace

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

const channelName = "Upseller"

// saleActor identifica movimentos gerados pela importação automática.
const saleActor = "upseller-sync"

// Gateway expõe exportação de catálogo e importação de vendas.
type Gateway struct {
	txRunner    TxRunner
	ledger      *appstock.Ledger
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	saleRepo    repository.SaleRepository
}

// NewGateway constrói o gateway.
func NewGateway(
	txRunner TxRunner,
	ledger *appstock.Ledger,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	saleRepo repository.SaleRepository,
) *Gateway {
	return &Gateway{
		txRunner:    txRunner,
		ledger:      ledger,
		productRepo: productRepo,
		companyRepo: companyRepo,
		saleRepo:    saleRepo,
	}
}

// ExportCatalog monta o snapshot do catálogo consolidado a partir do estado
// corrente do ledger. Leitura pura, sem cache além da própria chamada.
func (g *Gateway) ExportCatalog(ctx context.Context) ([]dto.CatalogItemDTO, error) {
	products, err := g.productRepo.List(ctx, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("exportar catálogo: %w", err)
	}
	items := make([]dto.CatalogItemDTO, 0, len(products))
	for _, p := range products {
		cons, err := g.ledger.ConsolidatedPosition(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("posição consolidada de %s: %w", p.SKU, err)
		}
		items = append(items, dto.CatalogItemDTO{
			SKU:                 p.SKU,
			Name:                p.Name,
			AvailableQuantity:   cons.Quantity,
			WeightedAverageCost: cons.WeightedAverageCost,
			SellPrice:           p.SellPrice,
		})
	}
	return items, nil
}

// ImportSale aplica um evento de venda do canal: baixa o estoque da empresa
// vendedora linha a linha (saldo pode ficar negativo), apura o lucro com o
// custo médio capturado antes de cada baixa, lança a receber pelo líquido e a
// taxa do canal como despesa já baixada. Pedido repetido falha com
// ErrDuplicateSale antes de qualquer mutação.
func (g *Gateway) ImportSale(ctx context.Context, ev dto.SaleEventRequest) (*dto.SaleResultDTO, error) {
	if err := g.validate(ctx, ev); err != nil {
		return nil, err
	}

	// Resolução de SKUs fora da transação (somente leitura): SKU desconhecido
	// aborta tudo antes de abrir a transação.
	productBySKU := make(map[string]*entity.Product, len(ev.Items))
	for _, item := range ev.Items {
		product, err := g.productRepo.GetBySKU(ctx, item.SKU)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("venda %s item %s: %w", ev.ExternalOrderID, item.SKU, domain.ErrUnknownProduct)
		}
		productBySKU[item.SKU] = product
	}
	company, err := g.companyRepo.GetByCNPJ(ctx, ev.CNPJ)
	if err != nil || company == nil {
		return nil, fmt.Errorf("venda %s empresa %s: %w", ev.ExternalOrderID, ev.CNPJ, domain.ErrUnknownCompany)
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:              uuid.New().String(),
		ExternalOrderID: ev.ExternalOrderID,
		CompanyID:       company.ID,
		GrossAmount:     ev.GrossAmount,
		FeeAmount:       ev.FeeAmount,
		NetAmount:       ev.NetAmount,
		CreatedAt:       now,
	}

	var result *dto.SaleResultDTO
	err = g.txRunner.RunSale(ctx, func(
		posRepo repository.StockPositionRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		entryRepo repository.AccountEntryRepository,
	) error {
		// Inserir a venda primeiro: o índice único de pedido é a guarda de
		// idempotência; violação devolve ErrDuplicateSale e nada foi mutado.
		if err := saleRepo.Create(ctx, sale); err != nil {
			return fmt.Errorf("venda %s: %w", ev.ExternalOrderID, err)
		}

		docRef := channelName + "-" + ev.ExternalOrderID
		profit := decimal.Zero
		for _, item := range ev.Items {
			product := productBySKU[item.SKU]
			// Custo médio pré-baixa, lido com a linha já bloqueada; fixa a
			// ordem de leitura mesmo sendo a venda neutra para o custo.
			pos, err := posRepo.GetForUpdate(ctx, company.ID, product.ID)
			if err != nil {
				return err
			}
			preAvg := pos.AverageCost

			if _, err := appstock.ApplyMovementTx(ctx, posRepo, movRepo, appstock.MovementInput{
				CompanyID: company.ID,
				ProductID: product.ID,
				Kind:      entity.MovementSale,
				Quantity:  -item.Quantity,
				Reference: docRef,
				Actor:     saleActor,
			}); err != nil {
				return err
			}
			lineProfit := item.UnitPrice.Sub(preAvg).Mul(decimal.NewFromInt(item.Quantity))
			profit = profit.Add(lineProfit)
		}

		receivable := &entity.AccountEntry{
			ID:           uuid.New().String(),
			Type:         entity.EntryReceivable,
			Description:  "Venda " + channelName + " " + ev.ExternalOrderID,
			Amount:       ev.NetAmount,
			DueDate:      now,
			Status:       entity.EntryPending,
			Counterparty: channelName,
			SourceRef:    sale.ID,
			CreatedAt:    now,
		}
		if err := entryRepo.Create(ctx, receivable); err != nil {
			return fmt.Errorf("conta a receber da venda %s: %w", ev.ExternalOrderID, err)
		}

		// A taxa do canal é retida antes do repasse: entra como despesa já
		// baixada, não como pendência.
		if ev.FeeAmount.IsPositive() {
			settled := now
			fee := &entity.AccountEntry{
				ID:           uuid.New().String(),
				Type:         entity.EntryPayable,
				Description:  "Taxa " + channelName + " " + ev.ExternalOrderID,
				Amount:       ev.FeeAmount,
				DueDate:      now,
				Status:       entity.EntrySettled,
				Counterparty: channelName,
				SourceRef:    sale.ID,
				SettledAt:    &settled,
				CreatedAt:    now,
			}
			if err := entryRepo.Create(ctx, fee); err != nil {
				return fmt.Errorf("taxa da venda %s: %w", ev.ExternalOrderID, err)
			}
		}

		if err := saleRepo.UpdateProfit(ctx, sale.ID, profit); err != nil {
			return err
		}
		result = &dto.SaleResultDTO{
			SaleID:          sale.ID,
			ExternalOrderID: ev.ExternalOrderID,
			Movements:       len(ev.Items),
			Profit:          profit,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (g *Gateway) validate(ctx context.Context, ev dto.SaleEventRequest) error {
	if ev.ExternalOrderID == "" || ev.CNPJ == "" {
		return domain.ErrInvalidInput
	}
	if len(ev.Items) == 0 {
		return fmt.Errorf("venda %s sem itens: %w", ev.ExternalOrderID, domain.ErrInvalidInput)
	}
	for _, item := range ev.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("venda %s item %s quantidade %d: %w", ev.ExternalOrderID, item.SKU, item.Quantity, domain.ErrInvalidQuantity)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("venda %s item %s preço %s: %w", ev.ExternalOrderID, item.SKU, item.UnitPrice, domain.ErrInvalidInput)
		}
	}
	if ev.NetAmount.IsNegative() || ev.FeeAmount.IsNegative() {
		return fmt.Errorf("venda %s valores negativos: %w", ev.ExternalOrderID, domain.ErrInvalidInput)
	}
	// Pré-checagem amigável; a garantia real é o índice único na inserção.
	existing, err := g.saleRepo.GetByExternalOrderID(ctx, ev.ExternalOrderID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("venda %s: %w", ev.ExternalOrderID, domain.ErrDuplicateSale)
	}
	return nil
}

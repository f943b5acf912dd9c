package dto

import "github.com/shopspring/decimal"

// CatalogItemDTO item do catálogo consolidado exportado ao marketplace.
// Nomes de campo seguem o contrato do canal (Upseller).
type CatalogItemDTO struct {
	SKU                 string          `json:"sku"`
	Name                string          `json:"nome"`
	AvailableQuantity   int64           `json:"estoque_disponivel"`
	WeightedAverageCost decimal.Decimal `json:"custo_medio"`
	SellPrice           decimal.Decimal `json:"preco_venda"`
}

// SaleEventItem linha do evento de venda recebido do canal.
type SaleEventItem struct {
	SKU       string          `json:"sku"`
	Quantity  int64           `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"preco_unitario"`
}

// SaleEventRequest evento de venda do marketplace. ExternalOrderID é a chave
// de idempotência da importação.
type SaleEventRequest struct {
	ExternalOrderID string          `json:"pedido_id"`
	CNPJ            string          `json:"cnpj"`
	Items           []SaleEventItem `json:"itens"`
	GrossAmount     decimal.Decimal `json:"valor_bruto"`
	FeeAmount       decimal.Decimal `json:"taxas"`
	NetAmount       decimal.Decimal `json:"valor_liquido"`
}

// SaleResultDTO resultado da importação, com o lucro apurado por linha
// (preço de venda menos custo médio pré-baixa).
type SaleResultDTO struct {
	SaleID          string          `json:"sale_id"`
	ExternalOrderID string          `json:"pedido_id"`
	Movements       int             `json:"movements"`
	Profit          decimal.Decimal `json:"lucro_bruto"`
}

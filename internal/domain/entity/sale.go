package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale é o registro persistido de uma venda importada do marketplace.
// ExternalOrderID é a chave de idempotência: uma segunda importação com o
// mesmo id falha com ErrDuplicateSale sem nenhum efeito no estoque.
type Sale struct {
	ID              string
	ExternalOrderID string
	CompanyID       string
	GrossAmount     decimal.Decimal
	FeeAmount       decimal.Decimal
	NetAmount       decimal.Decimal
	Profit          decimal.Decimal // soma de qty x (preço de venda - custo médio pré-baixa)
	CreatedAt       time.Time
}

// SaleItem é uma linha do evento de venda recebido do canal.
type SaleItem struct {
	SKU       string
	Quantity  int64
	UnitPrice decimal.Decimal
}

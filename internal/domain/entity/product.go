package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto do catálogo (SKU único).
// OutOfState marca produto adquirido de fornecedor fora do estado: as compras
// recebem o adicional de 6% de ICMS no custo efetivo (aplicado pelo pipeline
// de notas, nunca pelo ledger de estoque).
type Product struct {
	ID         string
	SKU        string // código único
	Barcode    string // EAN, opcional
	Name       string
	Category   string
	Unit       string // UN, CX, KG...
	OutOfState bool
	SellPrice  decimal.Decimal // preço de venda; entrada read-only no cálculo de margem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

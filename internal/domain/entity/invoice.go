package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados da nota fiscal de entrada. PROCESSED é terminal: reprocessar é
// rejeitado com ErrAlreadyProcessed, nunca sucesso silencioso.
const (
	InvoiceStaged    = "STAGED"
	InvoiceProcessed = "PROCESSED"
)

// Invoice é uma nota fiscal de fornecedor preparada a partir do XML parseado.
// Enquanto STAGED pode ser inspecionada ou descartada livremente; somente uma
// nota PROCESSED produziu movimentos de estoque e conta a pagar.
type Invoice struct {
	ID           string
	Number       string // número da NF-e
	CompanyID    string // empresa de destino
	SupplierName string
	SupplierCNPJ string
	OutOfState   bool // fornecedor fora do estado: linhas recebem +6% ICMS
	Items        []InvoiceItem
	Total        decimal.Decimal // total declarado = soma dos totais de linha
	Status       string
	CreatedAt    time.Time
	ProcessedAt  *time.Time
}

// InvoiceItem é uma linha da nota: resolvida contra o catálogo por código ou
// código de barras na hora do processamento.
type InvoiceItem struct {
	Code        string
	Barcode     string
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// LineTotal devolve quantidade x preço unitário da linha.
func (i InvoiceItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

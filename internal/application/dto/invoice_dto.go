package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StageInvoiceItem linha normalizada da nota (entregue pelo parser de XML).
type StageInvoiceItem struct {
	Code        string          `json:"code"`
	Barcode     string          `json:"barcode,omitempty"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// StageInvoiceRequest nota normalizada pronta para preparação (STAGED).
type StageInvoiceRequest struct {
	Number       string             `json:"number"`
	CompanyID    string             `json:"company_id"` // empresa de destino, já resolvida pelo CNPJ
	SupplierName string             `json:"supplier_name"`
	SupplierCNPJ string             `json:"supplier_cnpj"`
	OutOfState   bool               `json:"out_of_state"`
	Items        []StageInvoiceItem `json:"items"`
}

// InvoiceDTO nota devolvida ao console.
type InvoiceDTO struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	CompanyID    string             `json:"company_id"`
	SupplierName string             `json:"supplier_name"`
	SupplierCNPJ string             `json:"supplier_cnpj"`
	OutOfState   bool               `json:"out_of_state"`
	Items        []StageInvoiceItem `json:"items"`
	Total        decimal.Decimal    `json:"total"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	ProcessedAt  *time.Time         `json:"processed_at,omitempty"`
}

// ProcessingResult resultado do processamento de uma nota: quantos movimentos
// foram aplicados e o valor da conta a pagar gerada.
type ProcessingResult struct {
	InvoiceID     string          `json:"invoice_id"`
	Movements     int             `json:"movements"`
	PayableAmount decimal.Decimal `json:"payable_amount"`
	PayableID     string          `json:"payable_id"`
}

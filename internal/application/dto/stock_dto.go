package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest requisição do diálogo de ajuste manual de estoque.
// Quantity é o delta assinado; UnitCost só é considerado em ajuste positivo
// (vazio mantém o custo médio atual).
type AdjustStockRequest struct {
	CNPJ      string           `json:"cnpj"`
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason    string           `json:"reason"`
}

// PositionDTO posição de estoque devolvida ao console.
type PositionDTO struct {
	CompanyID   string          `json:"company_id"`
	CNPJ        string          `json:"cnpj"`
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	Quantity    int64           `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MovementDTO movimento do log, para o histórico por chave.
type MovementDTO struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Reference string          `json:"reference"`
	CreatedAt time.Time       `json:"created_at"`
	CreatedBy string          `json:"created_by"`
}

// ConsistencyDTO resultado da checagem posição == soma dos movimentos.
type ConsistencyDTO struct {
	CompanyID     string `json:"company_id"`
	ProductID     string `json:"product_id"`
	Quantity      int64  `json:"quantity"`
	MovementTotal int64  `json:"movement_total"`
	Consistent    bool   `json:"consistent"`
}

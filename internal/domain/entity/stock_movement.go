package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind é a variante fechada de tipos de movimento. A regra do custo
// médio (entrada recalcula, saída nunca altera) é decidida pelo tipo, não por
// convenção de string aberta.
type MovementKind string

const (
	MovementPurchase   MovementKind = "PURCHASE"   // entrada por nota fiscal de compra
	MovementAdjustment MovementKind = "ADJUSTMENT" // ajuste manual, delta com qualquer sinal
	MovementSale       MovementKind = "SALE"       // saída por venda
)

// Valid informa se o tipo pertence à variante fechada.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementPurchase, MovementAdjustment, MovementSale:
		return true
	}
	return false
}

// Inbound informa se o movimento é de entrada para efeito de custo médio:
// compra sempre, ajuste apenas com delta positivo.
func (k MovementKind) Inbound(delta int64) bool {
	switch k {
	case MovementPurchase:
		return true
	case MovementAdjustment:
		return delta > 0
	}
	return false
}

// StockMovement é o registro imutável, append-only, de um movimento de
// estoque. UnitCost carrega o custo efetivo nas entradas e o custo médio
// vigente nas saídas (para COGS); Reference aponta o documento de origem
// (nota fiscal, pedido do marketplace, nota de ajuste).
type StockMovement struct {
	ID        string
	CompanyID string
	ProductID string
	Kind      MovementKind
	Quantity  int64 // delta assinado
	UnitCost  decimal.Decimal
	Reference string
	CreatedAt time.Time
	CreatedBy string
}

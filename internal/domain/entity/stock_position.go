package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockPosition é a posição de estoque por (empresa, produto): quantidade
// assinada (pode ficar negativa, backorder permitido) e custo médio móvel.
// É um fold materializado sobre o log de movimentos: a quantidade deve ser
// sempre igual à soma dos deltas dos movimentos da chave. Criada sob demanda
// no primeiro movimento e nunca removida (quantidade zero fica para auditoria).
type StockPosition struct {
	CompanyID   string
	ProductID   string
	Quantity    int64
	AverageCost decimal.Decimal // nunca negativo; só muda em movimentos de entrada
	UpdatedAt   time.Time
}

// ConsolidatedPosition é a visão agregada de um produto em todas as empresas:
// soma das quantidades e média dos custos ponderada pela quantidade de cada
// empresa (não re-derivada dos movimentos).
type ConsolidatedPosition struct {
	ProductID           string
	Quantity            int64
	WeightedAverageCost decimal.Decimal
}

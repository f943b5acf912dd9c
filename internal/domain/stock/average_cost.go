// Package stock contém a lógica pura de custo médio móvel (serviço de domínio).
package stock

import "github.com/shopspring/decimal"

// AverageCost recalcula o custo médio ponderado após uma entrada:
//
//	NovoCusto = (QtdAtual*CustoAtual + QtdEntrada*CustoEntrada) / (QtdAtual + QtdEntrada)
//
// quando a quantidade resultante é positiva. Se a posição resultante fica em
// zero ou negativa (posição nova, ou entrada sobre backorder que não cobre o
// saldo), o custo médio passa a ser o custo da própria entrada.
// Saídas nunca passam por aqui: não alteram o custo médio.
func AverageCost(oldQty int64, oldAvg decimal.Decimal, deltaQty int64, unitCost decimal.Decimal) decimal.Decimal {
	newQty := oldQty + deltaQty
	if newQty <= 0 {
		return unitCost
	}
	num := decimal.NewFromInt(oldQty).Mul(oldAvg).
		Add(decimal.NewFromInt(deltaQty).Mul(unitCost))
	return num.Div(decimal.NewFromInt(newQty))
}

package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Gerotto1967/gestao-api/internal/domain/stock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// TestAverageCost_MediaPonderada valida a fórmula do custo médio móvel com o
// exemplo canônico: 10 unidades a 5,00 mais 10 unidades a 7,00 devem
// resultar em custo médio 6,00.
func TestAverageCost_MediaPonderada(t *testing.T) {
	got := stock.AverageCost(10, dec("5.00"), 10, dec("7.00"))
	assert.True(t, got.Equal(dec("6.00")), "esperado 6.00, obtido %s", got)
}

// TestAverageCost_PosicaoNova verifica que a primeira entrada de uma posição
// zerada adota o custo da própria entrada.
func TestAverageCost_PosicaoNova(t *testing.T) {
	got := stock.AverageCost(0, decimal.Zero, 5, dec("12.50"))
	assert.True(t, got.Equal(dec("12.50")), "posição nova deve adotar o custo da entrada, obtido %s", got)
}

// TestAverageCost_EntradaSobreBackorder verifica que uma entrada que não
// cobre o saldo negativo (posição resultante <= 0) também adota o custo da
// entrada: não há estoque em mãos para ponderar.
func TestAverageCost_EntradaSobreBackorder(t *testing.T) {
	got := stock.AverageCost(-10, dec("4.00"), 6, dec("9.00"))
	assert.True(t, got.Equal(dec("9.00")), "entrada sobre backorder deve adotar o custo da entrada, obtido %s", got)

	// Cobrindo exatamente o saldo (resultante zero) a regra é a mesma.
	exact := stock.AverageCost(-6, dec("4.00"), 6, dec("9.00"))
	assert.True(t, exact.Equal(dec("9.00")))
}

// TestAverageCost_PesosDesiguais usa pesos desiguais para pegar regressões
// que uma média simples mascararia: 3 a 10,00 + 1 a 2,00 = 8,00.
func TestAverageCost_PesosDesiguais(t *testing.T) {
	got := stock.AverageCost(3, dec("10.00"), 1, dec("2.00"))
	assert.True(t, got.Equal(dec("8.00")), "esperado 8.00, obtido %s", got)
}

// TestAverageCost_SemArredondamentoBinario garante que valores que não têm
// representação binária exata (0.1, 0.2) não acumulam erro: é o motivo de o
// custo ser decimal e não float.
func TestAverageCost_SemArredondamentoBinario(t *testing.T) {
	got := stock.AverageCost(1, dec("0.1"), 1, dec("0.2"))
	assert.True(t, got.Equal(dec("0.15")), "esperado 0.15 exato, obtido %s", got)
}

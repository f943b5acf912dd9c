package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/Gerotto1967/gestao-api/internal/application/stock"
	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/testutil/memrepo"
)

const (
	companyA = "empresa-a"
	companyB = "empresa-b"
	prodSKU1 = "produto-1"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newLedger(t *testing.T) (*appstock.Ledger, *memrepo.Store) {
	t.Helper()
	store := memrepo.NewStore()
	ledger := appstock.NewLedger(
		memrepo.NewTxRunner(store),
		memrepo.NewPositionRepo(store),
		memrepo.NewMovementRepo(store),
	)
	return ledger, store
}

func purchase(companyID, productID string, qty int64, cost string) appstock.MovementInput {
	c := dec(cost)
	return appstock.MovementInput{
		CompanyID: companyID,
		ProductID: productID,
		Kind:      entity.MovementPurchase,
		Quantity:  qty,
		UnitCost:  &c,
		Reference: "NF-1",
		Actor:     "tester",
	}
}

// TestApplyMovement_CompraRecalculaCustoMedio aplica duas compras na mesma
// chave e confere quantidade e custo médio ponderado.
func TestApplyMovement_CompraRecalculaCustoMedio(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	_, err := ledger.ApplyMovement(ctx, purchase(companyA, prodSKU1, 10, "5.00"))
	require.NoError(t, err)

	pos, err := ledger.ApplyMovement(ctx, purchase(companyA, prodSKU1, 10, "7.00"))
	require.NoError(t, err)

	assert.Equal(t, int64(20), pos.Quantity)
	assert.True(t, pos.AverageCost.Equal(dec("6.00")), "custo médio esperado 6.00, obtido %s", pos.AverageCost)
}

// TestApplyMovement_SaidaNaoAlteraCusto verifica que a venda baixa a
// quantidade, preserva o custo médio e grava o movimento com o custo médio
// vigente (base do COGS).
func TestApplyMovement_SaidaNaoAlteraCusto(t *testing.T) {
	ledger, store := newLedger(t)
	ctx := context.Background()

	_, err := ledger.ApplyMovement(ctx, purchase(companyA, prodSKU1, 10, "6.00"))
	require.NoError(t, err)

	pos, err := ledger.ApplyMovement(ctx, appstock.MovementInput{
		CompanyID: companyA,
		ProductID: prodSKU1,
		Kind:      entity.MovementSale,
		Quantity:  -4,
		Reference: "Upseller-1",
		Actor:     "tester",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), pos.Quantity)
	assert.True(t, pos.AverageCost.Equal(dec("6.00")), "saída não pode alterar o custo médio")

	movs := store.Movements()
	require.Len(t, movs, 2)
	assert.True(t, movs[1].UnitCost.Equal(dec("6.00")), "saída registra o custo médio vigente")
}

// TestApplyMovement_BackorderPermitido deixa a posição negativa e confere que
// a entrada seguinte que não cobre o saldo adota o custo da entrada.
func TestApplyMovement_BackorderPermitido(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	pos, err := ledger.ApplyMovement(ctx, appstock.MovementInput{
		CompanyID: companyA,
		ProductID: prodSKU1,
		Kind:      entity.MovementSale,
		Quantity:  -5,
		Reference: "Upseller-2",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-5), pos.Quantity, "venda sem saldo deve ser aceita (backorder)")

	pos, err = ledger.ApplyMovement(ctx, purchase(companyA, prodSKU1, 3, "8.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(-2), pos.Quantity)
	assert.True(t, pos.AverageCost.Equal(dec("8.00")), "entrada sobre backorder adota o custo da entrada")
}

// TestApplyMovement_AjustePositivoSemCustoMantemMedia confere o ajuste
// positivo sem custo informado: quantidade muda, custo médio não.
func TestApplyMovement_AjustePositivoSemCustoMantemMedia(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	_, err := ledger.ApplyMovement(ctx, purchase(companyA, prodSKU1, 10, "5.00"))
	require.NoError(t, err)

	pos, err := ledger.ApplyMovement(ctx, appstock.MovementInput{
		CompanyID: companyA,
		ProductID: prodSKU1,
		Kind:      entity.MovementAdjustment,
		Quantity:  2,
		Reference: "inventario",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), pos.Quantity)
	assert.True(t, pos.AverageCost.Equal(dec("5.00")))
}

// TestApplyMovement_Validacao cobre os rejeites antes de qualquer mutação.
func TestApplyMovement_Validacao(t *testing.T) {
	ledger, store := newLedger(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		in      appstock.MovementInput
		wantErr error
	}{
		{"delta zero", appstock.MovementInput{CompanyID: companyA, ProductID: prodSKU1, Kind: entity.MovementAdjustment}, domain.ErrInvalidQuantity},
		{"compra negativa", appstock.MovementInput{CompanyID: companyA, ProductID: prodSKU1, Kind: entity.MovementPurchase, Quantity: -1}, domain.ErrInvalidQuantity},
		{"compra sem custo", appstock.MovementInput{CompanyID: companyA, ProductID: prodSKU1, Kind: entity.MovementPurchase, Quantity: 1}, domain.ErrInvalidCost},
		{"venda positiva", appstock.MovementInput{CompanyID: companyA, ProductID: prodSKU1, Kind: entity.MovementSale, Quantity: 1}, domain.ErrInvalidQuantity},
		{"tipo desconhecido", appstock.MovementInput{CompanyID: companyA, ProductID: prodSKU1, Kind: "TRANSFER", Quantity: 1}, domain.ErrInvalidInput},
		{"chave vazia", appstock.MovementInput{Kind: entity.MovementAdjustment, Quantity: 1}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.ApplyMovement(ctx, tc.in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	costNeg := dec("-1.00")
	_, err := ledger.ApplyMovement(ctx, appstock.MovementInput{
		CompanyID: companyA, ProductID: prodSKU1,
		Kind: entity.MovementPurchase, Quantity: 1, UnitCost: &costNeg,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCost)

	assert.Empty(t, store.Movements(), "nenhum rejeite pode gravar movimento")
}

// TestConsolidatedPosition agrega o mesmo produto em duas empresas: soma das
// quantidades e média ponderada pela quantidade; posição negativa entra na
// soma mas não no peso do custo.
func TestConsolidatedPosition(t *testing.T) {
	ledger, store := newLedger(t)
	ctx := context.Background()

	store.SeedPosition(entity.StockPosition{CompanyID: companyA, ProductID: prodSKU1, Quantity: 10, AverageCost: dec("5.00")})
	store.SeedPosition(entity.StockPosition{CompanyID: companyB, ProductID: prodSKU1, Quantity: 30, AverageCost: dec("9.00")})

	cons, err := ledger.ConsolidatedPosition(ctx, prodSKU1)
	require.NoError(t, err)
	assert.Equal(t, int64(40), cons.Quantity)
	// (10*5 + 30*9) / 40 = 8.00
	assert.True(t, cons.WeightedAverageCost.Equal(dec("8.00")), "obtido %s", cons.WeightedAverageCost)

	store.SeedPosition(entity.StockPosition{CompanyID: "empresa-c", ProductID: prodSKU1, Quantity: -5, AverageCost: dec("100.00")})
	cons, err = ledger.ConsolidatedPosition(ctx, prodSKU1)
	require.NoError(t, err)
	assert.Equal(t, int64(35), cons.Quantity, "negativa entra na soma")
	assert.True(t, cons.WeightedAverageCost.Equal(dec("8.00")), "negativa não entra no peso do custo")
}

// TestCheckConsistency confere posição == soma dos deltas e detecta uma
// posição adulterada.
func TestCheckConsistency(t *testing.T) {
	ledger, store := newLedger(t)
	ctx := context.Background()

	_, err := ledger.ApplyMovement(ctx, purchase(companyA, prodSKU1, 10, "5.00"))
	require.NoError(t, err)
	_, err = ledger.ApplyMovement(ctx, appstock.MovementInput{
		CompanyID: companyA, ProductID: prodSKU1,
		Kind: entity.MovementSale, Quantity: -3,
	})
	require.NoError(t, err)

	posQty, sum, err := ledger.CheckConsistency(ctx, companyA, prodSKU1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), posQty)
	assert.Equal(t, posQty, sum)

	// Adultera a posição por fora do ledger: a checagem deve divergir.
	store.SeedPosition(entity.StockPosition{CompanyID: companyA, ProductID: prodSKU1, Quantity: 99, AverageCost: dec("5.00")})
	posQty, sum, err = ledger.CheckConsistency(ctx, companyA, prodSKU1)
	require.NoError(t, err)
	assert.NotEqual(t, posQty, sum)
}

// TestPosition_InexistenteVoltaZerada garante leitura de chave nunca
// movimentada sem erro e com quantidade zero.
func TestPosition_InexistenteVoltaZerada(t *testing.T) {
	ledger, _ := newLedger(t)

	pos, err := ledger.Position(context.Background(), companyA, "nunca-movimentado")
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Zero(t, pos.Quantity)
	assert.True(t, pos.AverageCost.IsZero())
}

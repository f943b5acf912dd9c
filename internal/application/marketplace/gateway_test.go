package marketplace_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/application/marketplace"
	appstock "github.com/Gerotto1967/gestao-api/internal/application/stock"
	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/testutil/memrepo"
)

const (
	companyID   = "empresa-1"
	companyCNPJ = "11222333000144"
	productID   = "produto-1"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newGateway(t *testing.T) (*marketplace.Gateway, *memrepo.Store) {
	t.Helper()
	store := memrepo.NewStore()
	store.SeedCompany(entity.Company{ID: companyID, CNPJ: companyCNPJ, Name: "Matriz", Active: true})
	store.SeedProduct(entity.Product{ID: productID, SKU: "SKU-1", Name: "Parafuso", SellPrice: dec("12.00")})
	store.SeedPosition(entity.StockPosition{CompanyID: companyID, ProductID: productID, Quantity: 10, AverageCost: dec("6.00")})

	txRunner := memrepo.NewTxRunner(store)
	ledger := appstock.NewLedger(txRunner, memrepo.NewPositionRepo(store), memrepo.NewMovementRepo(store))
	g := marketplace.NewGateway(
		txRunner,
		ledger,
		memrepo.NewProductRepo(store),
		memrepo.NewCompanyRepo(store),
		memrepo.NewSaleRepo(store),
	)
	return g, store
}

func saleEvent(orderID string) dto.SaleEventRequest {
	return dto.SaleEventRequest{
		ExternalOrderID: orderID,
		CNPJ:            companyCNPJ,
		Items: []dto.SaleEventItem{
			{SKU: "SKU-1", Quantity: 2, UnitPrice: dec("10.00")},
		},
		GrossAmount: dec("20.00"),
		FeeAmount:   dec("3.00"),
		NetAmount:   dec("17.00"),
	}
}

// TestImportSale_BaixaEstoqueEApuraLucro importa uma venda: baixa o estoque
// da empresa vendedora, lucro = qty x (preço - custo médio pré-baixa),
// a receber pelo líquido e taxa do canal como despesa já baixada.
func TestImportSale_BaixaEstoqueEApuraLucro(t *testing.T) {
	g, store := newGateway(t)
	ctx := context.Background()

	result, err := g.ImportSale(ctx, saleEvent("PED-100"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Movements)
	// 2 x (10.00 - 6.00) = 8.00
	assert.True(t, result.Profit.Equal(dec("8.00")), "lucro esperado 8.00, obtido %s", result.Profit)

	pos := store.Position(companyID, productID)
	assert.Equal(t, int64(8), pos.Quantity)
	assert.True(t, pos.AverageCost.Equal(dec("6.00")), "venda não altera o custo médio")

	sale := store.Sale(result.SaleID)
	assert.Equal(t, "PED-100", sale.ExternalOrderID)
	assert.True(t, sale.Profit.Equal(dec("8.00")))

	entries := store.Entries()
	require.Len(t, entries, 2)
	var receivable, fee *entity.AccountEntry
	for i := range entries {
		switch entries[i].Type {
		case entity.EntryReceivable:
			receivable = &entries[i]
		case entity.EntryPayable:
			fee = &entries[i]
		}
	}
	require.NotNil(t, receivable)
	assert.True(t, receivable.Amount.Equal(dec("17.00")), "a receber pelo líquido")
	assert.Equal(t, entity.EntryPending, receivable.Status)
	assert.Equal(t, result.SaleID, receivable.SourceRef)

	require.NotNil(t, fee, "taxa do canal deve virar despesa")
	assert.True(t, fee.Amount.Equal(dec("3.00")))
	assert.Equal(t, entity.EntrySettled, fee.Status, "taxa é retida na fonte, entra já baixada")
}

// TestImportSale_PedidoDuplicado garante a idempotência: mesmo pedido duas
// vezes falha com ErrDuplicateSale e nada muda na segunda chamada.
func TestImportSale_PedidoDuplicado(t *testing.T) {
	g, store := newGateway(t)
	ctx := context.Background()

	_, err := g.ImportSale(ctx, saleEvent("PED-200"))
	require.NoError(t, err)

	_, err = g.ImportSale(ctx, saleEvent("PED-200"))
	assert.ErrorIs(t, err, domain.ErrDuplicateSale)

	assert.Equal(t, int64(8), store.Position(companyID, productID).Quantity, "duplicata não pode baixar estoque de novo")
	assert.Len(t, store.Entries(), 2, "duplicata não pode lançar contas de novo")
}

// TestImportSale_SemSaldoDeixaNegativo: venda maior que o saldo é aceita e a
// posição fica negativa (backorder). A decisão de vender é do canal; o
// sistema registra a realidade.
func TestImportSale_SemSaldoDeixaNegativo(t *testing.T) {
	g, store := newGateway(t)
	ctx := context.Background()

	ev := saleEvent("PED-300")
	ev.Items[0].Quantity = 15
	_, err := g.ImportSale(ctx, ev)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), store.Position(companyID, productID).Quantity)
}

// TestImportSale_SemTaxaNaoLancaDespesa: taxa zero não gera lançamento.
func TestImportSale_SemTaxaNaoLancaDespesa(t *testing.T) {
	g, store := newGateway(t)
	ctx := context.Background()

	ev := saleEvent("PED-400")
	ev.FeeAmount = decimal.Zero
	ev.NetAmount = dec("20.00")
	_, err := g.ImportSale(ctx, ev)
	require.NoError(t, err)

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.EntryReceivable, entries[0].Type)
}

// TestImportSale_Rejeites cobre SKU desconhecido, empresa desconhecida e
// evento malformado, todos sem nenhuma mutação.
func TestImportSale_Rejeites(t *testing.T) {
	g, store := newGateway(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*dto.SaleEventRequest)
		wantErr error
	}{
		{"sku desconhecido", func(ev *dto.SaleEventRequest) { ev.Items[0].SKU = "NAO-EXISTE" }, domain.ErrUnknownProduct},
		{"empresa desconhecida", func(ev *dto.SaleEventRequest) { ev.CNPJ = "00000000000000" }, domain.ErrUnknownCompany},
		{"sem pedido", func(ev *dto.SaleEventRequest) { ev.ExternalOrderID = "" }, domain.ErrInvalidInput},
		{"sem itens", func(ev *dto.SaleEventRequest) { ev.Items = nil }, domain.ErrInvalidInput},
		{"quantidade zero", func(ev *dto.SaleEventRequest) { ev.Items[0].Quantity = 0 }, domain.ErrInvalidQuantity},
		{"líquido negativo", func(ev *dto.SaleEventRequest) { ev.NetAmount = dec("-1") }, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := saleEvent("PED-ERR-" + tc.name)
			tc.mutate(&ev)
			_, err := g.ImportSale(ctx, ev)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	assert.Equal(t, int64(10), store.Position(companyID, productID).Quantity, "rejeites não podem mutar o estoque")
	assert.Empty(t, store.Entries())
}

// TestExportCatalog monta o snapshot consolidado: quantidade somada entre
// empresas e custo médio ponderado.
func TestExportCatalog(t *testing.T) {
	g, store := newGateway(t)
	ctx := context.Background()

	store.SeedPosition(entity.StockPosition{CompanyID: "empresa-2", ProductID: productID, Quantity: 30, AverageCost: dec("9.00")})

	items, err := g.ExportCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "SKU-1", items[0].SKU)
	assert.Equal(t, int64(40), items[0].AvailableQuantity)
	// (10*6 + 30*9) / 40 = 8.25
	assert.True(t, items[0].WeightedAverageCost.Equal(dec("8.25")), "obtido %s", items[0].WeightedAverageCost)
	assert.True(t, items[0].SellPrice.Equal(dec("12.00")))
}

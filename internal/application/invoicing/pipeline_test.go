package invoicing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/application/invoicing"
	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/testutil/memrepo"
)

const (
	companyID = "11111111-aaaa-bbbb-cccc-000000000001"
	productID = "22222222-aaaa-bbbb-cccc-000000000001"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newPipeline(t *testing.T, cfg invoicing.Config) (*invoicing.Pipeline, *memrepo.Store) {
	t.Helper()
	store := memrepo.NewStore()
	store.SeedCompany(entity.Company{ID: companyID, CNPJ: "11222333000144", Name: "Matriz", Active: true})
	store.SeedProduct(entity.Product{ID: productID, SKU: "SKU-1", Barcode: "7891234567895", Name: "Parafuso"})
	p := invoicing.NewPipeline(
		memrepo.NewTxRunner(store),
		memrepo.NewCompanyRepo(store),
		memrepo.NewInvoiceRepo(store),
		cfg,
	)
	return p, store
}

func stageRequest(items ...dto.StageInvoiceItem) dto.StageInvoiceRequest {
	return dto.StageInvoiceRequest{
		Number:       "12345",
		CompanyID:    companyID,
		SupplierName: "Fornecedor XYZ",
		SupplierCNPJ: "99888777000166",
		Items:        items,
	}
}

// TestStage_PersisteComoStaged prepara uma nota válida e confere status,
// total declarado e ausência de efeito no ledger.
func TestStage_PersisteComoStaged(t *testing.T) {
	p, store := newPipeline(t, invoicing.Config{})
	ctx := context.Background()

	inv, err := p.Stage(ctx, stageRequest(
		dto.StageInvoiceItem{Code: "SKU-1", Description: "Parafuso", Quantity: 10, UnitPrice: dec("5.00")},
		dto.StageInvoiceItem{Code: "SKU-2", Description: "Porca", Quantity: 2, UnitPrice: dec("1.50")},
	))
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStaged, inv.Status)
	assert.True(t, inv.Total.Equal(dec("53.00")), "total declarado 10*5 + 2*1.5, obtido %s", inv.Total)

	assert.Empty(t, store.Movements(), "preparar nota não pode tocar o ledger")
	assert.Empty(t, store.Entries(), "preparar nota não pode lançar contas")
}

// TestStage_Rejeites cobre nota sem itens, linha sem código, quantidade
// inválida, preço negativo, empresa desconhecida e empresa inativa.
func TestStage_Rejeites(t *testing.T) {
	p, _ := newPipeline(t, invoicing.Config{})
	ctx := context.Background()

	ok := dto.StageInvoiceItem{Code: "SKU-1", Quantity: 1, UnitPrice: dec("1.00")}

	cases := []struct {
		name    string
		mutate  func(*dto.StageInvoiceRequest)
		wantErr error
	}{
		{"sem itens", func(r *dto.StageInvoiceRequest) { r.Items = nil }, domain.ErrInvalidInput},
		{"item sem código", func(r *dto.StageInvoiceRequest) { r.Items[0].Code = "" }, domain.ErrInvalidInput},
		{"quantidade zero", func(r *dto.StageInvoiceRequest) { r.Items[0].Quantity = 0 }, domain.ErrInvalidQuantity},
		{"preço negativo", func(r *dto.StageInvoiceRequest) { r.Items[0].UnitPrice = dec("-1") }, domain.ErrInvalidCost},
		{"empresa desconhecida", func(r *dto.StageInvoiceRequest) { r.CompanyID = "inexistente" }, domain.ErrUnknownCompany},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := stageRequest(ok)
			tc.mutate(&req)
			_, err := p.Stage(ctx, req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestProcess_GeraMovimentosEContaAPagar processa uma nota de dentro do
// estado: movimento PURCHASE por linha ao preço da nota, conta a pagar
// PENDING pelo total efetivo e nota marcada PROCESSED.
func TestProcess_GeraMovimentosEContaAPagar(t *testing.T) {
	p, store := newPipeline(t, invoicing.Config{})
	ctx := context.Background()

	inv, err := p.Stage(ctx, stageRequest(
		dto.StageInvoiceItem{Code: "SKU-1", Quantity: 10, UnitPrice: dec("5.00")},
	))
	require.NoError(t, err)

	result, err := p.Process(ctx, inv.ID, "maria")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Movements)
	assert.True(t, result.PayableAmount.Equal(dec("50.00")), "obtido %s", result.PayableAmount)

	pos := store.Position(companyID, productID)
	assert.Equal(t, int64(10), pos.Quantity)
	assert.True(t, pos.AverageCost.Equal(dec("5.00")))

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.EntryPayable, entries[0].Type)
	assert.Equal(t, entity.EntryPending, entries[0].Status)
	assert.Equal(t, inv.ID, entries[0].SourceRef)
	assert.Equal(t, "Fornecedor XYZ", entries[0].Counterparty)

	assert.Equal(t, entity.InvoiceProcessed, store.Invoice(inv.ID).Status)
	require.NotNil(t, store.Invoice(inv.ID).ProcessedAt)

	movs := store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, "NF-12345", movs[0].Reference)
	assert.Equal(t, "maria", movs[0].CreatedBy)
}

// TestProcess_ForaDoEstadoAplicaICMS confere o adicional de 6% no custo
// efetivo quando o fornecedor é de fora do estado: 100 unidades a 1,00
// custam 1,06 cada e geram conta a pagar de 106,00.
func TestProcess_ForaDoEstadoAplicaICMS(t *testing.T) {
	p, store := newPipeline(t, invoicing.Config{})
	ctx := context.Background()

	req := stageRequest(dto.StageInvoiceItem{Code: "SKU-1", Quantity: 100, UnitPrice: dec("1.00")})
	req.OutOfState = true
	inv, err := p.Stage(ctx, req)
	require.NoError(t, err)

	result, err := p.Process(ctx, inv.ID, "maria")
	require.NoError(t, err)
	assert.True(t, result.PayableAmount.Equal(dec("106.00")), "obtido %s", result.PayableAmount)

	pos := store.Position(companyID, productID)
	assert.True(t, pos.AverageCost.Equal(dec("1.06")), "custo efetivo com ICMS, obtido %s", pos.AverageCost)
}

// TestProcess_ProdutoForaDoEstado confere que a flag no cadastro do produto
// também dispara o adicional, mesmo com fornecedor local.
func TestProcess_ProdutoForaDoEstado(t *testing.T) {
	p, store := newPipeline(t, invoicing.Config{})
	ctx := context.Background()
	store.SeedProduct(entity.Product{ID: "prod-oe", SKU: "SKU-OE", Name: "Importado", OutOfState: true})

	inv, err := p.Stage(ctx, stageRequest(dto.StageInvoiceItem{Code: "SKU-OE", Quantity: 1, UnitPrice: dec("10.00")}))
	require.NoError(t, err)

	result, err := p.Process(ctx, inv.ID, "maria")
	require.NoError(t, err)
	assert.True(t, result.PayableAmount.Equal(dec("10.60")), "obtido %s", result.PayableAmount)
}

// TestProcess_Reprocessamento garante exatamente-uma-vez: a segunda chamada
// falha com ErrAlreadyProcessed e nada é duplicado.
func TestProcess_Reprocessamento(t *testing.T) {
	p, store := newPipeline(t, invoicing.Config{})
	ctx := context.Background()

	inv, err := p.Stage(ctx, stageRequest(dto.StageInvoiceItem{Code: "SKU-1", Quantity: 10, UnitPrice: dec("5.00")}))
	require.NoError(t, err)

	_, err = p.Process(ctx, inv.ID, "maria")
	require.NoError(t, err)

	_, err = p.Process(ctx, inv.ID, "maria")
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	assert.Len(t, store.Movements(), 1, "reprocessamento não pode duplicar movimentos")
	assert.Len(t, store.Entries(), 1, "reprocessamento não pode duplicar contas")
	assert.Equal(t, int64(10), store.Position(companyID, productID).Quantity)
}

// TestProcess_LinhaDesconhecidaAbortaTudo: com auto-cadastro desligado, uma
// linha que não resolve no catálogo aborta a nota inteira antes de qualquer
// movimento e a nota permanece STAGED (re-tentável).
func TestProcess_LinhaDesconhecidaAbortaTudo(t *testing.T) {
	p, store := newPipeline(t, invoicing.Config{AutoCreateProducts: false})
	ctx := context.Background()

	inv, err := p.Stage(ctx, stageRequest(
		dto.StageInvoiceItem{Code: "SKU-1", Quantity: 5, UnitPrice: dec("2.00")},
		dto.StageInvoiceItem{Code: "NAO-EXISTE", Quantity: 1, UnitPrice: dec("1.00")},
	))
	require.NoError(t, err)

	_, err = p.Process(ctx, inv.ID, "maria")
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)

	assert.Empty(t, store.Movements(), "linha desconhecida não pode deixar movimento parcial")
	assert.Empty(t, store.Entries())
	assert.Equal(t, entity.InvoiceStaged, store.Invoice(inv.ID).Status, "nota deve continuar re-tentável")

	// Cadastrando o produto que faltava, a re-tentativa processa inteira.
	store.SeedProduct(entity.Product{ID: uuid.New().String(), SKU: "NAO-EXISTE", Name: "Novo"})
	result, err := p.Process(ctx, inv.ID, "maria")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Movements)
}

// TestProcess_AutoCadastro: com a política ligada, a linha desconhecida vira
// produto novo (resolvido por código e por código de barras).
func TestProcess_AutoCadastro(t *testing.T) {
	p, store := newPipeline(t, invoicing.Config{AutoCreateProducts: true})
	ctx := context.Background()

	inv, err := p.Stage(ctx, stageRequest(
		dto.StageInvoiceItem{Code: "NOVO-1", Barcode: "7890000000017", Description: "Arruela", Quantity: 3, UnitPrice: dec("0.50")},
	))
	require.NoError(t, err)

	result, err := p.Process(ctx, inv.ID, "maria")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Movements)

	created, err := memrepo.NewProductRepo(store).GetBySKU(ctx, "NOVO-1")
	require.NoError(t, err)
	require.NotNil(t, created, "linha desconhecida deve virar produto")
	assert.Equal(t, "Arruela", created.Name)
	assert.Equal(t, "7890000000017", created.Barcode)
}

// TestProcess_ResolvePorCodigoDeBarras: linha cujo código não é o SKU mas o
// EAN bate com o cadastro.
func TestProcess_ResolvePorCodigoDeBarras(t *testing.T) {
	p, store := newPipeline(t, invoicing.Config{})
	ctx := context.Background()

	inv, err := p.Stage(ctx, stageRequest(
		dto.StageInvoiceItem{Code: "COD-DO-FORNECEDOR", Barcode: "7891234567895", Quantity: 2, UnitPrice: dec("4.00")},
	))
	require.NoError(t, err)

	_, err = p.Process(ctx, inv.ID, "maria")
	require.NoError(t, err)
	assert.Equal(t, int64(2), store.Position(companyID, productID).Quantity)
}

// TestDiscard: nota STAGED pode ser descartada; PROCESSED não.
func TestDiscard(t *testing.T) {
	p, store := newPipeline(t, invoicing.Config{})
	ctx := context.Background()

	inv, err := p.Stage(ctx, stageRequest(dto.StageInvoiceItem{Code: "SKU-1", Quantity: 1, UnitPrice: dec("1.00")}))
	require.NoError(t, err)
	require.NoError(t, p.Discard(ctx, inv.ID))
	assert.Empty(t, store.Invoice(inv.ID).ID)

	inv2, err := p.Stage(ctx, stageRequest(dto.StageInvoiceItem{Code: "SKU-1", Quantity: 1, UnitPrice: dec("1.00")}))
	require.NoError(t, err)
	_, err = p.Process(ctx, inv2.ID, "maria")
	require.NoError(t, err)
	assert.ErrorIs(t, p.Discard(ctx, inv2.ID), domain.ErrAlreadyProcessed)
}

package nfe_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/infrastructure/nfe"
)

const testCompanyID = "empresa-1"

// nfeXML monta um nfeProc mínimo com a UF do emitente e os itens informados.
func nfeXML(uf string, items ...string) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe41260811222333000144550010000123451000012345" versao="4.00">
      <ide><nNF>12345</nNF></ide>
      <emit>
        <CNPJ>99888777000166</CNPJ>
        <xNome>Distribuidora Alfa Ltda</xNome>
        <enderEmit><UF>` + uf + `</UF></enderEmit>
      </emit>
`)
	for i, item := range items {
		b.WriteString(`      <det nItem="` + string(rune('1'+i)) + `"><prod>` + item + `</prod></det>
`)
	}
	b.WriteString(`    </infNFe>
  </NFe>
</nfeProc>`)
	return []byte(b.String())
}

func item(code, ean, desc, qty, price string) string {
	return `<cProd>` + code + `</cProd><cEAN>` + ean + `</cEAN><xProd>` + desc +
		`</xProd><qCom>` + qty + `</qCom><vUnCom>` + price + `</vUnCom>`
}

// TestParse_NotaCompleta extrai número, emitente, UF e itens de um nfeProc
// com namespace (o formato autorizado pela SEFAZ).
func TestParse_NotaCompleta(t *testing.T) {
	p := nfe.NewParser("PR")

	req, err := p.Parse(nfeXML("PR",
		item("SKU-1", "7891234567895", "Parafuso 5mm", "10.0000", "5.0000"),
		item("SKU-2", "SEM GTIN", "Porca 5mm", "2", "1.50"),
	), testCompanyID)
	require.NoError(t, err)

	assert.Equal(t, "12345", req.Number)
	assert.Equal(t, testCompanyID, req.CompanyID)
	assert.Equal(t, "Distribuidora Alfa Ltda", req.SupplierName)
	assert.Equal(t, "99888777000166", req.SupplierCNPJ)
	assert.False(t, req.OutOfState, "emitente na UF base não é interestadual")

	require.Len(t, req.Items, 2)
	assert.Equal(t, "SKU-1", req.Items[0].Code)
	assert.Equal(t, "7891234567895", req.Items[0].Barcode)
	assert.Equal(t, "Parafuso 5mm", req.Items[0].Description)
	assert.Equal(t, int64(10), req.Items[0].Quantity)
	assert.True(t, req.Items[0].UnitPrice.Equal(decimal.RequireFromString("5.0000")))

	assert.Empty(t, req.Items[1].Barcode, `"SEM GTIN" deve virar código de barras vazio`)
}

// TestParse_ForaDoEstado: emitente com UF diferente da base marca a nota como
// interestadual.
func TestParse_ForaDoEstado(t *testing.T) {
	p := nfe.NewParser("PR")

	req, err := p.Parse(nfeXML("SP", item("SKU-1", "SEM GTIN", "Item", "1", "1.00")), testCompanyID)
	require.NoError(t, err)
	assert.True(t, req.OutOfState)
}

// TestParse_QuantidadeFracionariaRejeitada: qCom com parte decimal não nula é
// rejeitado (o ledger trabalha em unidades inteiras).
func TestParse_QuantidadeFracionariaRejeitada(t *testing.T) {
	p := nfe.NewParser("PR")

	_, err := p.Parse(nfeXML("PR", item("SKU-1", "SEM GTIN", "Granel", "2.5000", "1.00")), testCompanyID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestParse_Rejeites cobre XML malformado, documento sem infNFe, nota sem
// número e nota sem itens.
func TestParse_Rejeites(t *testing.T) {
	p := nfe.NewParser("PR")

	cases := []struct {
		name string
		xml  []byte
	}{
		{"malformado", []byte(`<nfeProc><NFe>`)},
		{"sem infNFe", []byte(`<?xml version="1.0"?><outro><coisa/></outro>`)},
		{"sem numero", []byte(`<NFe><infNFe><ide></ide><det><prod>` + item("A", "SEM GTIN", "X", "1", "1") + `</prod></det></infNFe></NFe>`)},
		{"sem itens", nfeXML("PR")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Parse(tc.xml, testCompanyID)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// TestParse_NFeSemProcesso aceita o documento NFe direto, sem o invólucro
// nfeProc.
func TestParse_NFeSemProcesso(t *testing.T) {
	p := nfe.NewParser("PR")

	xml := []byte(`<NFe><infNFe><ide><nNF>777</nNF></ide><emit><xNome>Beta</xNome></emit>` +
		`<det><prod>` + item("B-1", "SEM GTIN", "Bucha", "4", "0.25") + `</prod></det></infNFe></NFe>`)
	req, err := p.Parse(xml, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, "777", req.Number)
	assert.False(t, req.OutOfState, "sem endereço do emitente assume-se nota local")
	require.Len(t, req.Items, 1)
	assert.Equal(t, int64(4), req.Items[0].Quantity)
}

package nfe

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/domain"
)

// Parser extrai os dados de uma NF-e (modelo 55) para preparação de nota de
// entrada. HomeState é a UF das empresas do grupo: nota emitida por outra UF
// é marcada como interestadual (acréscimo de ICMS no custo).
type Parser struct {
	homeState string
}

// NewParser constrói o parser com a UF base da configuração.
func NewParser(homeState string) *Parser {
	return &Parser{homeState: strings.ToUpper(homeState)}
}

// Parse lê o XML da NF-e e devolve a requisição de preparação de nota.
// Aceita tanto o documento nfeProc (nota autorizada) quanto NFe direto.
func (p *Parser) Parse(xmlData []byte, companyID string) (*dto.StageInvoiceRequest, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlData); err != nil {
		return nil, fmt.Errorf("%w: XML inválido: %v", domain.ErrInvalidInput, err)
	}

	infNFe := doc.FindElement("//infNFe")
	if infNFe == nil {
		return nil, fmt.Errorf("%w: elemento infNFe não encontrado", domain.ErrInvalidInput)
	}

	req := &dto.StageInvoiceRequest{
		CompanyID: companyID,
		Number:    childText(infNFe.FindElement("ide"), "nNF"),
	}
	if req.Number == "" {
		return nil, fmt.Errorf("%w: nota sem número (nNF)", domain.ErrInvalidInput)
	}

	emit := infNFe.FindElement("emit")
	if emit != nil {
		req.SupplierName = childText(emit, "xNome")
		req.SupplierCNPJ = childText(emit, "CNPJ")
		if ender := emit.FindElement("enderEmit"); ender != nil {
			uf := strings.ToUpper(childText(ender, "UF"))
			req.OutOfState = uf != "" && uf != p.homeState
		}
	}

	for _, det := range infNFe.FindElements("det") {
		prod := det.FindElement("prod")
		if prod == nil {
			continue
		}
		qty, err := parseQuantity(childText(prod, "qCom"))
		if err != nil {
			return nil, fmt.Errorf("%w: quantidade inválida no item %s", domain.ErrInvalidInput, childText(prod, "cProd"))
		}
		price, err := decimal.NewFromString(childText(prod, "vUnCom"))
		if err != nil {
			return nil, fmt.Errorf("%w: preço inválido no item %s", domain.ErrInvalidInput, childText(prod, "cProd"))
		}
		barcode := childText(prod, "cEAN")
		if barcode == "SEM GTIN" {
			barcode = ""
		}
		req.Items = append(req.Items, dto.StageInvoiceItem{
			Code:        childText(prod, "cProd"),
			Barcode:     barcode,
			Description: childText(prod, "xProd"),
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: nota sem itens", domain.ErrInvalidInput)
	}

	return req, nil
}

// parseQuantity converte qCom (decimal no XML) para unidades inteiras.
// Quantidade fracionária é rejeitada: o ledger trabalha em unidades.
func parseQuantity(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("quantidade fracionária: %s", s)
	}
	return d.IntPart(), nil
}

func childText(parent *etree.Element, tag string) string {
	if parent == nil {
		return ""
	}
	if el := parent.FindElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

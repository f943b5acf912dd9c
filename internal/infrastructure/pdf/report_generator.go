// Package pdf implementa a geração do relatório financeiro em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: pagar / receber / bancos / estoque / patrimônio     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: histórico mensal (ano | mês | tipo | total | qtd)   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReportGenerator gera o relatório financeiro usando Maroto v2.
type ReportGenerator struct{}

// NewReportGenerator constrói o gerador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// GenerateFinanceReport gera o PDF do relatório e devolve seus bytes.
func (g *ReportGenerator) GenerateFinanceReport(
	report *dto.FinanceReportDTO,
	inventoryValue decimal.Decimal,
	history []dto.MonthlyTotalDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório Financeiro", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report, inventoryValue)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(historyHeaderRow())
	m.AddRows(historyRows(history)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (esq) e período + data de emissão (dir).
func headerRow(report *dto.FinanceReportDTO) core.Row {
	periodo := fmt.Sprintf("%s a %s",
		report.PeriodStart.Format("02/01/2006"),
		report.PeriodEnd.Format("02/01/2006"),
	)
	return row.New(16).Add(
		col.New(7).Add(
			text.New("RELATÓRIO FINANCEIRO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Gestão de Estoque e Financeiro", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+periodo, props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Emitido em: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRows: bloco de indicadores agregados.
func summaryRows(report *dto.FinanceReportDTO, inventoryValue decimal.Decimal) []core.Row {
	item := func(label, value string, highlight bool) core.Row {
		style := props.Text{Size: 9, Align: align.Right, Right: 1}
		labelStyle := props.Text{Size: 9, Left: 1}
		if highlight {
			style = props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}
			labelStyle = props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Left: 1}
		}
		return row.New(6).Add(
			col.New(6).Add(text.New(label, labelStyle)),
			col.New(6).Add(text.New(value, style)),
		)
	}
	return []core.Row{
		item("Contas a pagar (pendentes):", "R$ "+report.PayablesPending.StringFixed(2), false),
		item("Contas a receber (pendentes):", "R$ "+report.ReceivablesPending.StringFixed(2), false),
		item("Saldo em bancos:", "R$ "+report.BankBalance.StringFixed(2), false),
		item("Valor do estoque (custo médio):", "R$ "+inventoryValue.StringFixed(2), false),
		item("Receitas no período:", "R$ "+report.RevenueInPeriod.StringFixed(2), false),
		item("Despesas no período:", "R$ "+report.ExpenseInPeriod.StringFixed(2), false),
		item("PATRIMÔNIO LÍQUIDO:", "R$ "+report.NetWorth.StringFixed(2), true),
	}
}

// historyHeaderRow: cabeçalho da tabela de histórico mensal.
func historyHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Ano", 2, align.Center),
		h("Mês", 2, align.Center),
		h("Tipo", 3, align.Left),
		h("Total", 3, align.Right),
		h("Lançamentos", 2, align.Center),
	)
}

// historyRows: uma linha por (ano, mês, tipo).
func historyRows(history []dto.MonthlyTotalDTO) []core.Row {
	result := make([]core.Row, 0, len(history))
	for _, h := range history {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", h.Year), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%02d", h.Month), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(typeLabel(h.Type), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New("R$ "+h.Total.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", h.Count), props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

func typeLabel(t string) string {
	switch t {
	case entity.EntryPayable:
		return "A pagar"
	case entity.EntryReceivable:
		return "A receber"
	}
	return t
}

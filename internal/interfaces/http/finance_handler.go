package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/application/finance"
	"github.com/Gerotto1967/gestao-api/internal/infrastructure/pdf"
)

// FinanceHandler trata contas a pagar/receber, baixas e relatórios.
type FinanceHandler struct {
	engine *finance.Engine
	pdfGen *pdf.ReportGenerator
}

// NewFinanceHandler constrói o handler.
func NewFinanceHandler(engine *finance.Engine, pdfGen *pdf.ReportGenerator) *FinanceHandler {
	return &FinanceHandler{engine: engine, pdfGen: pdfGen}
}

// List godoc
// @Summary      Listar lançamentos
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING ou SETTLED (vazio lista todos)"
// @Success      200  {array}  entity.AccountEntry
// @Router       /api/financeiro [get]
func (h *FinanceHandler) List(c *fiber.Ctx) error {
	entries, err := h.engine.Entries(c.Context(), c.Query("status"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(entries)
}

// Post godoc
// @Summary      Lançar conta a pagar/receber
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostEntryRequest  true  "type, description, amount, due_date"
// @Success      201   {object}  entity.AccountEntry
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/financeiro [post]
func (h *FinanceHandler) Post(c *fiber.Ctx) error {
	var in dto.PostEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	entry, err := h.engine.Post(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// Settle godoc
// @Summary      Baixar lançamento
// @Description  Baixa integral contra uma conta bancária: marca SETTLED e
// aplica o valor no saldo na mesma transação. Valor parcial é rejeitado.
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID do lançamento"
// @Param        body  body  dto.SettleRequest  true  "bank_account_id, amount, date"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/financeiro/{id}/pagar [post]
func (h *FinanceHandler) Settle(c *fiber.Ctx) error {
	var in dto.SettleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	if err := h.engine.Settle(c.Context(), c.Params("id"), in.BankAccountID, in.Amount, date); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "lançamento baixado"})
}

// Report godoc
// @Summary      Relatório financeiro agregado
// @Description  Pendências, saldo em bancos, receitas/despesas do período e
// patrimônio líquido. Período padrão: mês corrente.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Início (YYYY-MM-DD)"
// @Param        end    query  string  false  "Fim (YYYY-MM-DD)"
// @Success      200  {object}  dto.FinanceReportDTO
// @Router       /api/financeiro/relatorio [get]
func (h *FinanceHandler) Report(c *fiber.Ctx) error {
	start, end := periodFromQuery(c)
	report, err := h.engine.Report(c.Context(), start, end)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(report)
}

// History godoc
// @Summary      Histórico financeiro mensal
// @Description  Totais agrupados por (ano, mês, tipo), mais recente primeiro.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Limite de linhas (padrão 24)"
// @Success      200  {array}  dto.MonthlyTotalDTO
// @Router       /api/financeiro/historico [get]
func (h *FinanceHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	if limit <= 0 {
		limit = 24
	}
	history, err := h.engine.History(c.Context(), limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(history)
}

// ReportPDF godoc
// @Summary      Relatório financeiro em PDF
// @Tags         finance
// @Security     Bearer
// @Produce      application/pdf
// @Param        start  query  string  false  "Início (YYYY-MM-DD)"
// @Param        end    query  string  false  "Fim (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Router       /api/financeiro/relatorio/pdf [get]
func (h *FinanceHandler) ReportPDF(c *fiber.Ctx) error {
	start, end := periodFromQuery(c)
	report, err := h.engine.Report(c.Context(), start, end)
	if err != nil {
		return errorResponse(c, err)
	}
	valuation, err := h.engine.InventoryValuation(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	history, err := h.engine.History(c.Context(), 24)
	if err != nil {
		return errorResponse(c, err)
	}
	doc, err := h.pdfGen.GenerateFinanceReport(report, valuation, history)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="relatorio-financeiro.pdf"`)
	return c.Send(doc)
}

// periodFromQuery lê start/end (YYYY-MM-DD); padrão é o mês corrente.
func periodFromQuery(c *fiber.Ctx) (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	if s, err := time.Parse("2006-01-02", c.Query("start")); err == nil {
		start = s
	}
	if e, err := time.Parse("2006-01-02", c.Query("end")); err == nil {
		end = e.AddDate(0, 0, 1)
	}
	return start, end
}

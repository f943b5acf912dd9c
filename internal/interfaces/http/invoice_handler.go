package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/application/invoicing"
	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
	"github.com/Gerotto1967/gestao-api/internal/infrastructure/nfe"
)

// InvoiceHandler trata o fluxo de notas fiscais de entrada: upload do XML,
// preparação, processamento e descarte.
type InvoiceHandler struct {
	pipeline    *invoicing.Pipeline
	parser      *nfe.Parser
	companyRepo repository.CompanyRepository
}

// NewInvoiceHandler constrói o handler.
func NewInvoiceHandler(pipeline *invoicing.Pipeline, parser *nfe.Parser, companyRepo repository.CompanyRepository) *InvoiceHandler {
	return &InvoiceHandler{pipeline: pipeline, parser: parser, companyRepo: companyRepo}
}

// Upload godoc
// @Summary      Upload de XML de NF-e
// @Description  Parseia o XML, valida e prepara a nota (STAGED). Nada muda no estoque.
// @Tags         invoices
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file    true  "Arquivo XML da NF-e"
// @Param        cnpj  formData  string  true  "CNPJ de destino"
// @Success      201   {object}  dto.InvoiceDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/xml/upload [post]
func (h *InvoiceHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "arquivo XML obrigatório"})
	}
	cnpj := c.FormValue("cnpj")
	company, err := h.companyRepo.GetByCNPJ(c.Context(), cnpj)
	if err != nil {
		return errorResponse(c, err)
	}
	if company == nil {
		return errorResponse(c, fmt.Errorf("empresa %s: %w", cnpj, domain.ErrUnknownCompany))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errorResponse(c, err)
	}
	defer file.Close()
	xmlData, err := io.ReadAll(file)
	if err != nil {
		return errorResponse(c, err)
	}

	req, err := h.parser.Parse(xmlData, company.ID)
	if err != nil {
		return errorResponse(c, err)
	}
	invoice, err := h.pipeline.Stage(c.Context(), *req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInvoiceDTO(invoice))
}

// Process godoc
// @Summary      Processar nota preparada
// @Description  Aplica os movimentos de compra de todas as linhas e gera a conta
// a pagar numa única transação. Nota já processada é rejeitada.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da nota"
// @Success      200  {object}  dto.ProcessingResult
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/xml/{id}/processar [post]
func (h *InvoiceHandler) Process(c *fiber.Ctx) error {
	result, err := h.pipeline.Process(c.Context(), c.Params("id"), GetUsername(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

// List godoc
// @Summary      Listar notas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "STAGED ou PROCESSED (vazio lista todas)"
// @Success      200  {array}  dto.InvoiceDTO
// @Router       /api/xml [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invoices, err := h.pipeline.List(c.Context(), c.Query("status"))
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.InvoiceDTO, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceDTO(inv))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Buscar nota
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da nota"
// @Success      200  {object}  dto.InvoiceDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/xml/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.pipeline.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toInvoiceDTO(invoice))
}

// Discard godoc
// @Summary      Descartar nota preparada
// @Description  Somente notas STAGED podem ser descartadas.
// @Tags         invoices
// @Security     Bearer
// @Param        id  path  string  true  "ID da nota"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/xml/{id} [delete]
func (h *InvoiceHandler) Discard(c *fiber.Ctx) error {
	if err := h.pipeline.Discard(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toInvoiceDTO(inv *entity.Invoice) dto.InvoiceDTO {
	items := make([]dto.StageInvoiceItem, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.StageInvoiceItem{
			Code:        it.Code,
			Barcode:     it.Barcode,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return dto.InvoiceDTO{
		ID:           inv.ID,
		Number:       inv.Number,
		CompanyID:    inv.CompanyID,
		SupplierName: inv.SupplierName,
		SupplierCNPJ: inv.SupplierCNPJ,
		OutOfState:   inv.OutOfState,
		Items:        items,
		Total:        inv.Total,
		Status:       inv.Status,
		CreatedAt:    inv.CreatedAt,
		ProcessedAt:  inv.ProcessedAt,
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/application/marketplace"
)

// UpsellerHandler expõe a integração com o marketplace: exportação do
// catálogo consolidado e importação de eventos de venda.
type UpsellerHandler struct {
	gateway *marketplace.Gateway
}

// NewUpsellerHandler constrói o handler.
func NewUpsellerHandler(gateway *marketplace.Gateway) *UpsellerHandler {
	return &UpsellerHandler{gateway: gateway}
}

// ExportCatalog godoc
// @Summary      Exportar catálogo consolidado
// @Description  Estoque somado de todas as empresas e custo médio ponderado por SKU.
// @Tags         upseller
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CatalogItemDTO
// @Router       /api/upseller/estoque [get]
func (h *UpsellerHandler) ExportCatalog(c *fiber.Ctx) error {
	items, err := h.gateway.ExportCatalog(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(items)
}

// ImportSale godoc
// @Summary      Importar venda do marketplace
// @Description  Baixa o estoque de todas as linhas, registra os lançamentos
// financeiros e apura o lucro bruto numa única transação. Pedido repetido é
// rejeitado sem nenhum efeito.
// @Tags         upseller
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleEventRequest  true  "pedido_id, cnpj, itens, valor_bruto, taxas, valor_liquido"
// @Success      201   {object}  dto.SaleResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/upseller/venda [post]
func (h *UpsellerHandler) ImportSale(c *fiber.Ctx) error {
	var in dto.SaleEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	result, err := h.gateway.ImportSale(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

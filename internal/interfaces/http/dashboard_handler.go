package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Gerotto1967/gestao-api/internal/application/analytics"
)

// DashboardHandler expõe o resumo agregado do console.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumo do dashboard
// @Description  Contagens de cadastro, vendas do mês, valoração de estoque e
// indicadores financeiros, agregados em paralelo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(summary)
}

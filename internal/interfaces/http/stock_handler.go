package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/application/stock"
	"github.com/Gerotto1967/gestao-api/internal/application/usecase"
	"github.com/Gerotto1967/gestao-api/internal/domain"
	"github.com/Gerotto1967/gestao-api/internal/domain/entity"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
)

// StockHandler trata o console de estoque: posições, ajustes manuais,
// histórico de movimentos e checagem de consistência.
type StockHandler struct {
	ledger      *stock.Ledger
	companyRepo repository.CompanyRepository
	productUC   *usecase.ProductUseCase
}

// NewStockHandler constrói o handler.
func NewStockHandler(ledger *stock.Ledger, companyRepo repository.CompanyRepository, productUC *usecase.ProductUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, companyRepo: companyRepo, productUC: productUC}
}

// Adjust godoc
// @Summary      Ajuste manual de estoque
// @Description  Delta assinado; custo unitário opcional em ajuste positivo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "cnpj, product_id, quantity, unit_cost, reason"
// @Success      200   {object}  dto.PositionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/estoque/ajuste [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	company, err := h.resolveCompany(c, in.CNPJ)
	if err != nil {
		return errorResponse(c, err)
	}
	pos, err := h.ledger.ApplyMovement(c.Context(), stock.MovementInput{
		CompanyID: company.ID,
		ProductID: in.ProductID,
		Kind:      entity.MovementAdjustment,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Reference: in.Reason,
		Actor:     GetUsername(c),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(h.toPositionDTO(c, pos, company.CNPJ))
}

// Positions godoc
// @Summary      Posições de estoque
// @Description  Por empresa (?cnpj=) ou por produto (?product_id=). Um dos dois é obrigatório.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        cnpj        query  string  false  "CNPJ da empresa"
// @Param        product_id  query  string  false  "ID do produto"
// @Success      200  {array}  dto.PositionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/estoque/posicoes [get]
func (h *StockHandler) Positions(c *fiber.Ctx) error {
	cnpj := c.Query("cnpj")
	productID := c.Query("product_id")

	var positions []*entity.StockPosition
	cnpjByCompany := map[string]string{}

	switch {
	case cnpj != "":
		company, err := h.resolveCompany(c, cnpj)
		if err != nil {
			return errorResponse(c, err)
		}
		positions, err = h.ledger.PositionsByCompany(c.Context(), company.ID)
		if err != nil {
			return errorResponse(c, err)
		}
		cnpjByCompany[company.ID] = company.CNPJ
	case productID != "":
		var err error
		positions, err = h.ledger.PositionsByProduct(c.Context(), productID)
		if err != nil {
			return errorResponse(c, err)
		}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "informe cnpj ou product_id"})
	}

	out := make([]dto.PositionDTO, 0, len(positions))
	for _, p := range positions {
		cnpj, ok := cnpjByCompany[p.CompanyID]
		if !ok {
			if company, err := h.companyRepo.GetByID(c.Context(), p.CompanyID); err == nil && company != nil {
				cnpj = company.CNPJ
			}
			cnpjByCompany[p.CompanyID] = cnpj
		}
		out = append(out, h.toPositionDTO(c, p, cnpj))
	}
	return c.JSON(out)
}

// Consolidated godoc
// @Summary      Posição consolidada de um produto
// @Description  Soma das quantidades de todas as empresas e custo médio ponderado.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID do produto"
// @Success      200  {object}  entity.ConsolidatedPosition
// @Router       /api/estoque/consolidado/{product_id} [get]
func (h *StockHandler) Consolidated(c *fiber.Ctx) error {
	pos, err := h.ledger.ConsolidatedPosition(c.Context(), c.Params("product_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(pos)
}

// Movements godoc
// @Summary      Histórico de movimentos de uma chave
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        cnpj        query  string  true   "CNPJ da empresa"
// @Param        product_id  query  string  true   "ID do produto"
// @Param        limit       query  int     false  "Limite (padrão 100)"
// @Success      200  {array}  dto.MovementDTO
// @Router       /api/estoque/movimentos [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	company, err := h.resolveCompany(c, c.Query("cnpj"))
	if err != nil {
		return errorResponse(c, err)
	}
	movements, err := h.ledger.Movements(c.Context(), company.ID, c.Query("product_id"), c.QueryInt("limit"))
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementDTO{
			ID:        m.ID,
			Kind:      string(m.Kind),
			Quantity:  m.Quantity,
			UnitCost:  m.UnitCost,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return c.JSON(out)
}

// CheckConsistency godoc
// @Summary      Checar consistência de uma chave
// @Description  Confronta a posição materializada com a soma dos deltas do log.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        cnpj        query  string  true  "CNPJ da empresa"
// @Param        product_id  query  string  true  "ID do produto"
// @Success      200  {object}  dto.ConsistencyDTO
// @Router       /api/estoque/consistencia [get]
func (h *StockHandler) CheckConsistency(c *fiber.Ctx) error {
	company, err := h.resolveCompany(c, c.Query("cnpj"))
	if err != nil {
		return errorResponse(c, err)
	}
	productID := c.Query("product_id")
	quantity, sum, err := h.ledger.CheckConsistency(c.Context(), company.ID, productID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ConsistencyDTO{
		CompanyID:     company.ID,
		ProductID:     productID,
		Quantity:      quantity,
		MovementTotal: sum,
		Consistent:    quantity == sum,
	})
}

func (h *StockHandler) resolveCompany(c *fiber.Ctx, cnpj string) (*entity.Company, error) {
	if cnpj == "" {
		return nil, fmt.Errorf("cnpj obrigatório: %w", domain.ErrInvalidInput)
	}
	company, err := h.companyRepo.GetByCNPJ(c.Context(), cnpj)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", cnpj, domain.ErrUnknownCompany)
	}
	return company, nil
}

func (h *StockHandler) toPositionDTO(c *fiber.Ctx, p *entity.StockPosition, cnpj string) dto.PositionDTO {
	sku := ""
	if product, err := h.productUC.GetByID(c.Context(), p.ProductID); err == nil {
		sku = product.SKU
	}
	return dto.PositionDTO{
		CompanyID:   p.CompanyID,
		CNPJ:        cnpj,
		ProductID:   p.ProductID,
		SKU:         sku,
		Quantity:    p.Quantity,
		AverageCost: p.AverageCost,
		UpdatedAt:   p.UpdatedAt,
	}
}

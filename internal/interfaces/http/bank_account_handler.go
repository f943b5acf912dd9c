package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Gerotto1967/gestao-api/internal/application/dto"
	"github.com/Gerotto1967/gestao-api/internal/application/usecase"
)

// BankAccountHandler trata o cadastro de contas bancárias.
type BankAccountHandler struct {
	uc *usecase.BankAccountUseCase
}

// NewBankAccountHandler constrói o handler.
func NewBankAccountHandler(uc *usecase.BankAccountUseCase) *BankAccountHandler {
	return &BankAccountHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar conta bancária
// @Description  O saldo inicial só é aceito na criação; depois muda apenas por baixas.
// @Tags         banks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BankAccountRequest  true  "name, bank, saldo_atual"
// @Success      201   {object}  entity.BankAccount
// @Router       /api/contas-banco [post]
func (h *BankAccountHandler) Create(c *fiber.Ctx) error {
	var in dto.BankAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	account, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(account)
}

// List godoc
// @Summary      Listar contas bancárias
// @Tags         banks
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.BankAccount
// @Router       /api/contas-banco [get]
func (h *BankAccountHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(list)
}

// Update godoc
// @Summary      Atualizar conta bancária
// @Description  Saldo não é editável por esta rota.
// @Tags         banks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID da conta"
// @Param        body  body  dto.BankAccountRequest  true  "name, bank, active"
// @Success      200   {object}  entity.BankAccount
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contas-banco/{id} [put]
func (h *BankAccountHandler) Update(c *fiber.Ctx) error {
	var in dto.BankAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	account, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(account)
}

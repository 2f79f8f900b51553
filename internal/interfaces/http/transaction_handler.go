package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/billing"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
)

// TransactionHandler serves settlement and billing reads (protected).
type TransactionHandler struct {
	uc *billing.UseCase
}

func NewTransactionHandler(uc *billing.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Settle godoc
// @Summary      Settle a pending order into a transaction
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SettleOrderRequest  true  "order_id, type"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/settle [post]
func (h *TransactionHandler) Settle(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	userID := GetUserID(c)
	if restaurantID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.SettleOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Settle(c.Context(), restaurantID, userID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Receipt godoc
// @Summary      Download the PDF receipt of a transaction
// @Tags         transactions
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "transaction id"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/receipt [get]
func (h *TransactionHandler) Receipt(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	pdf, err := h.uc.Receipt(c.Context(), restaurantID, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt.pdf"`)
	return c.Send(pdf)
}

// Get godoc
// @Summary      Get one transaction
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "transaction id"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Context(), restaurantID, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List transactions
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.Context(), restaurantID, pageFromQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

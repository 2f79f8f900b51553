package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/orders"
)

// OrderHandler serves cart submission and order reads (protected).
type OrderHandler struct {
	uc *orders.UseCase
}

func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Submit godoc
// @Summary      Submit a cart for a table
// @Description  Merges into the table's open order when one exists; only
//               quantity increases are deducted from inventory. Inventory
//               problems come back as warnings, not errors.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitOrderRequest  true  "table_number, items"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	userID := GetUserID(c)
	if restaurantID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.SubmitOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Submit(c.Context(), restaurantID, userID, in)
	if err != nil {
		return fail(c, err)
	}
	status := fiber.StatusOK
	if !out.Merged {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// Get godoc
// @Summary      Get one order
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "order id"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
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
// @Summary      List orders
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
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

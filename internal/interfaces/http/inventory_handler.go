package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/inventory"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// InventoryHandler registra entradas y salidas de stock.
type InventoryHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Entry POST /api/movimentacoes/entrada.
func (h *InventoryHandler) Entry(c *fiber.Ctx) error {
	return h.register(c, entity.MovementEntry)
}

// Exit POST /api/movimentacoes/saida. Una salida mayor al stock responde 422.
func (h *InventoryHandler) Exit(c *fiber.Ctx) error {
	return h.register(c, entity.MovementExit)
}

func (h *InventoryHandler) register(c *fiber.Ctx, t entity.MovementType) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.UserContext(), GetUserID(c), t, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

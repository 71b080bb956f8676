package menu

import "github.com/gofiber/fiber/v2"

// Handler serves the public menu endpoints used by the meal builder.

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/menu/lunch", h.getLunchMenu)
	app.Get("/api/v1/menu/dinner", h.getDinnerMenu)
}

func (h *Handler) getLunchMenu(c *fiber.Ctx) error {
	return h.getMenu(c, MealLunch)
}

func (h *Handler) getDinnerMenu(c *fiber.Ctx) error {
	return h.getMenu(c, MealDinner)
}

func (h *Handler) getMenu(c *fiber.Ctx, mealType string) error {
	m, err := h.service.GetByMealType(mealType)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "menu not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(m)
}

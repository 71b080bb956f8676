package admin

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/skfood/thali-backend/internal/order"
	"github.com/skfood/thali-backend/internal/user"
)

// Handler serves the admin dashboard. Mutations go straight to the order
// service; queries go through the admin service.

type Handler struct {
	service *Service
	orders  order.ServiceInterface
}

func NewHandler(s *Service, orders order.ServiceInterface) *Handler {
	return &Handler{service: s, orders: orders}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/orders", h.listOrders)
	app.Get("/api/v1/admin/orders/stats", h.getStats)
	app.Patch("/api/v1/admin/orders/:id/status", h.updateStatus)
	app.Post("/api/v1/admin/orders/:id/verify-delivery", h.verifyDelivery)
}

func (h *Handler) requireAdmin(c *fiber.Ctx) error {
	if _, err := user.GetUserIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
	}
	return nil
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	if res := h.requireAdmin(c); res != nil {
		return res
	}

	result, err := h.service.List(Filter{
		Status: c.Query("status", "all"),
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid status. Use: all, pending, paid, preparing, on-the-way, delivered or cancelled",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch orders"})
		}
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"orders":     result.Orders,
		"pagination": result.Pagination,
	})
}

func (h *Handler) getStats(c *fiber.Ctx) error {
	if res := h.requireAdmin(c); res != nil {
		return res
	}
	stats, err := h.service.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(stats)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	if res := h.requireAdmin(c); res != nil {
		return res
	}

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	target := order.Status(strings.ToLower(strings.TrimSpace(payload.Status)))
	if !order.ValidStatus(target) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid status. Must be one of: pending, paid, preparing, on-the-way, delivered, cancelled",
		})
	}

	ord, err := h.orders.AdvanceStatus(c.Params("id"), target)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		case errors.Is(err, order.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Invalid status transition"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "Order status updated successfully", "order": ord})
}

type verifyDeliveryRequest struct {
	OTP string `json:"otp"`
}

func (h *Handler) verifyDelivery(c *fiber.Ctx) error {
	if res := h.requireAdmin(c); res != nil {
		return res
	}

	payload := new(verifyDeliveryRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if strings.TrimSpace(payload.OTP) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "OTP is required"})
	}

	ord, err := h.orders.VerifyDeliveryOTP(c.Params("id"), payload.OTP)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		case errors.Is(err, order.ErrAlreadyDelivered):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Order is already delivered"})
		case errors.Is(err, order.ErrOTPMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Incorrect OTP"})
		case errors.Is(err, order.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Order is not out for delivery"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "Order marked as delivered successfully", "order": ord})
}

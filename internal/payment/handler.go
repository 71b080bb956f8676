package payment

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/skfood/thali-backend/internal/logger"
	"github.com/skfood/thali-backend/internal/order"
	"github.com/skfood/thali-backend/internal/user"
)

// Handler serves the payment verification callback endpoint.

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(s *Service, log *logger.Logger) *Handler {
	return &Handler{service: s, log: log}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders/verify-payment", h.verifyPayment)
}

func (h *Handler) verifyPayment(c *fiber.Ctx) error {
	cb := new(Callback)
	if err := c.BodyParser(cb); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	ord, err := h.service.VerifyPayment(userID, *cb)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCallback):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		case errors.Is(err, order.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "order not found"})
		case errors.Is(err, order.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "forbidden"})
		case errors.Is(err, order.ErrAlreadyCancelled):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "order was cancelled"})
		case errors.Is(err, ErrSignatureMismatch):
			// deliberately generic; never explain which check failed
			rid, _ := c.Locals("requestId").(string)
			h.log.Warn("verify_payment", rid, "signature mismatch on payment callback", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "payment verification failed"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "payment verified",
		"order": fiber.Map{
			"orderId":           ord.ID,
			"status":            ord.Status,
			"otp":               ord.OTP,
			"estimatedDelivery": ord.EstimatedDelivery,
		},
	})
}

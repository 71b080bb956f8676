package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/skfood/thali-backend/internal/address"
	"github.com/skfood/thali-backend/internal/logger"
	"github.com/skfood/thali-backend/internal/menu"
	"github.com/skfood/thali-backend/internal/pricing"
)

// Handler serves the end-user checkout and order history endpoints. It also
// needs the address service to remember delivery addresses from checkouts.

type Handler struct {
	service        ServiceInterface
	addressService address.ServiceInterface
	log            *logger.Logger
}

func NewHandler(s ServiceInterface, as address.ServiceInterface, log *logger.Logger) *Handler {
	return &Handler{service: s, addressService: as, log: log}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.createOrder)
	app.Get("/api/v1/orders", h.listMyOrders)
	app.Get("/api/v1/orders/:id", h.getMyOrder)
}

type createOrderRequest struct {
	MealType        string   `json:"mealType"`
	MenuID          int      `json:"menuId"`
	SelectedSabjis  []string `json:"selectedSabjis"`
	BaseOption      string   `json:"baseOption"`
	ExtraRoti       int      `json:"extraRoti"`
	Quantity        int      `json:"quantity"`
	DeliveryAddress struct {
		Label   string   `json:"label"`
		Address string   `json:"address"`
		Lat     *float64 `json:"lat"`
		Lng     *float64 `json:"lng"`
		Phone   string   `json:"phoneNumber"`
	} `json:"deliveryAddress"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.DeliveryAddress.Address == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "deliveryAddress is required"})
	}

	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	snapshot := AddressSnapshot{
		Label:   payload.DeliveryAddress.Label,
		Address: payload.DeliveryAddress.Address,
		Lat:     payload.DeliveryAddress.Lat,
		Lng:     payload.DeliveryAddress.Lng,
		Phone:   payload.DeliveryAddress.Phone,
	}

	created, err := h.service.Create(userID, Draft{
		MealType:        payload.MealType,
		MenuID:          payload.MenuID,
		SelectedSabjis:  payload.SelectedSabjis,
		BaseOption:      payload.BaseOption,
		ExtraRoti:       payload.ExtraRoti,
		Quantity:        payload.Quantity,
		DeliveryAddress: snapshot,
	})
	if err != nil {
		return h.createError(c, err)
	}

	// remember the address for next time; checkout must not fail on this
	if _, err := h.addressService.AddAddress(userID, address.Address{
		Label:   snapshot.Label,
		Address: snapshot.Address,
		Lat:     snapshot.Lat,
		Lng:     snapshot.Lng,
		Phone:   snapshot.Phone,
	}); err != nil {
		h.log.Warn("save_address", requestID(c), "could not save delivery address", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"order":   sanitize(created),
		"razorpayOrder": fiber.Map{
			"id":       created.RazorpayOrderID,
			"amount":   created.Pricing.Total * 100,
			"currency": "INR",
		},
	})
}

func (h *Handler) createError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, pricing.ErrInvalidSelection):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error(), "field": "selectedSabjis"})
	case errors.Is(err, ErrUnknownSabji):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error(), "field": "selectedSabjis"})
	case errors.Is(err, pricing.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error(), "field": "quantity"})
	case errors.Is(err, ErrInvalidBaseOption):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error(), "field": "baseOption"})
	case errors.Is(err, menu.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "menu not found"})
	case errors.Is(err, ErrGateway):
		h.log.Error("create_order", requestID(c), "payment gateway call failed", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "payment gateway unavailable, please retry"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

func (h *Handler) listMyOrders(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	out := make([]Order, 0, len(orders))
	for _, ord := range orders {
		out = append(out, sanitize(ord))
	}
	return c.JSON(out)
}

func (h *Handler) getMyOrder(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	ord, err := h.service.GetForUser(userID, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(sanitize(ord))
}

// sanitize hides the OTP until the order is paid for; a pending order's
// code must not leak before payment is verified.
func sanitize(ord Order) Order {
	if ord.Status == StatusPending || ord.Status == StatusCancelled {
		ord.OTP = ""
	}
	return ord
}

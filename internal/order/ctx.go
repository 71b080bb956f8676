package order

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skfood/thali-backend/internal/user"
)

func userIDFromCtx(c *fiber.Ctx) (int, error) {
	return user.GetUserIDFromCtx(c)
}

func requestID(c *fiber.Ctx) string {
	rid, _ := c.Locals("requestId").(string)
	return rid
}

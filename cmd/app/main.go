package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"github.com/skfood/thali-backend/internal/address"
	"github.com/skfood/thali-backend/internal/admin"
	"github.com/skfood/thali-backend/internal/config"
	"github.com/skfood/thali-backend/internal/logger"
	"github.com/skfood/thali-backend/internal/menu"
	"github.com/skfood/thali-backend/internal/order"
	"github.com/skfood/thali-backend/internal/payment"
	"github.com/skfood/thali-backend/internal/pricing"
	"github.com/skfood/thali-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New("thali-backend")

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	bootstrapSchema(db)
	seedMenus(db, log)

	app := fiber.New()
	setupCORS(app)
	app.Use(requestIDMiddleware)
	app.Use(traceMiddleware)

	// menu catalog is public; everything past the jwt middleware is not
	menuService := menu.NewService(menu.NewPostgresRepository(db))
	menu.NewHandler(menuService).RegisterPublicRoutes(app)

	// one gateway client for the whole process, injected where needed
	gateway := payment.NewRazorpayClient(cfg.RazorpayAPIURL, cfg.RazorpayKeyID, cfg.RazorpaySecret)

	orderService := order.NewService(order.NewPostgresRepository(db), menuService, gateway)
	addressService := address.NewService(address.NewPostgresRepository(db))
	userService := user.NewService(user.NewPostgresRepository(db))

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	order.NewHandler(orderService, addressService, log).RegisterProtectedRoutes(app)
	payment.NewHandler(payment.NewService(orderService, cfg.RazorpaySecret), log).RegisterProtectedRoutes(app)
	address.NewHandler(addressService).RegisterProtectedRoutes(app)

	adminService := admin.NewService(admin.NewPostgresRepository(db), userService)
	admin.NewHandler(adminService, orderService).RegisterProtectedRoutes(app)

	log.Info("startup", "", "listening on "+cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestIDMiddleware(c *fiber.Ctx) error {
	rid := c.Get("X-Request-ID")
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Locals("requestId", rid)
	c.Set("X-Request-ID", rid)
	return c.Next()
}

func traceMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

func bootstrapSchema(db *sql.DB) {
	// users come from the identity provider; we only keep contact details
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS users (
		"userId" SERIAL PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT '',
		"createdAt" TEXT NOT NULL DEFAULT ''
	)`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS menus (
		"menuId" SERIAL PRIMARY KEY,
		"mealType" TEXT UNIQUE NOT NULL,
		"basePrice" INT NOT NULL DEFAULT 60,
		sabjis jsonb NOT NULL DEFAULT '[]',
		"baseOptions" TEXT[] NOT NULL DEFAULT '{}',
		"createdAt" TEXT NOT NULL DEFAULT '',
		"updatedAt" TEXT NOT NULL DEFAULT ''
	)`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS orders (
		"orderId" TEXT PRIMARY KEY,
		"orderNumber" SERIAL UNIQUE,
		"userId" INT NOT NULL,
		"mealType" TEXT NOT NULL DEFAULT '',
		"menuId" INT NOT NULL DEFAULT 0,
		"selectedSabjis" jsonb NOT NULL DEFAULT '[]',
		"baseOption" TEXT NOT NULL DEFAULT '',
		"extraRoti" INT NOT NULL DEFAULT 0,
		quantity INT NOT NULL DEFAULT 1,
		"deliveryAddress" jsonb NOT NULL DEFAULT '{}',
		pricing jsonb NOT NULL DEFAULT '{}',
		status TEXT NOT NULL DEFAULT 'pending',
		otp TEXT NOT NULL DEFAULT '',
		"razorpayOrderId" TEXT NOT NULL DEFAULT '',
		"razorpayPaymentId" TEXT NOT NULL DEFAULT '',
		"razorpaySignature" TEXT NOT NULL DEFAULT '',
		"estimatedDelivery" TEXT NOT NULL DEFAULT '',
		"deliveredAt" TEXT NOT NULL DEFAULT '',
		"createdAt" TEXT NOT NULL DEFAULT ''
	)`); err != nil {
		panic(err)
	}
	// the admin dashboard filters by status and sorts newest first
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS orders_status_created_idx ON orders (status, "createdAt" DESC)`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS orders_user_idx ON orders ("userId")`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS address (
		"addressId" SERIAL PRIMARY KEY,
		"userId" INT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION,
		lng DOUBLE PRECISION,
		phone TEXT NOT NULL DEFAULT '',
		"createdAt" TEXT NOT NULL DEFAULT ''
	)`); err != nil {
		panic(err)
	}
}

func seedMenus(db *sql.DB, log *logger.Logger) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM menus`).Scan(&count); err != nil || count > 0 {
		return
	}

	baseOptions := []string{order.BaseRotiOnly, order.BaseRotiRice, order.BaseRiceOnly}
	seed := []struct {
		mealType string
		sabjis   []pricing.SelectedSabji
	}{
		{menu.MealLunch, []pricing.SelectedSabji{
			{Name: "Aloo Gobi"},
			{Name: "Dal Fry"},
			{Name: "Bhindi Masala"},
			{Name: "Paneer Butter Masala", IsSpecial: true},
		}},
		{menu.MealDinner, []pricing.SelectedSabji{
			{Name: "Dal Tadka"},
			{Name: "Mix Veg"},
			{Name: "Chana Masala"},
			{Name: "Malai Kofta", IsSpecial: true},
		}},
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, s := range seed {
		sabjisJSON, _ := json.Marshal(s.sabjis)
		if _, err := db.Exec(`INSERT INTO menus ("mealType", "basePrice", sabjis, "baseOptions", "createdAt", "updatedAt") VALUES ($1,$2,$3,$4,$5,$5)`,
			s.mealType, pricing.DefaultBasePrice, sabjisJSON, pq.Array(baseOptions), now); err != nil {
			log.Warn("seed_menus", "", "could not seed "+s.mealType+" menu", err)
			continue
		}
	}
}

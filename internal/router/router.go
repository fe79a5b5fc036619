package router

import (
	"github.com/Ativos-Tecnologia/radar-sub000/internal/config"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func Setup(app *fiber.App, db *sqlx.DB, rdb *redis.Client, hub *ws.Hub, cfg *config.Config) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"app":    cfg.AppName,
		})
	})

	// Websocket channel for import progress
	app.Use("/ws", ws.UpgradeMiddleware())
	app.Get("/ws/imports", hub.Handler())

	// Web routes (HTML)
	web := app.Group("")
	setupWebRoutes(web)

	// API routes (JSON)
	api := app.Group("/api/v1")
	SetupAPIRoutes(api, db, rdb, hub, cfg)
}

func setupWebRoutes(router fiber.Router) {
	router.Get("/login", func(c *fiber.Ctx) error {
		return c.Render("auth/login", fiber.Map{
			"Title": "Login",
		})
	})

	router.Get("/", func(c *fiber.Ctx) error {
		return c.Render("imports/index", fiber.Map{
			"Title": "Importações",
		})
	})

	router.Get("/imports", func(c *fiber.Ctx) error {
		return c.Render("imports/index", fiber.Map{
			"Title": "Importações",
		})
	})

	router.Get("/imports/new", func(c *fiber.Ctx) error {
		return c.Render("imports/new", fiber.Map{
			"Title": "Nova Importação",
		})
	})

	router.Get("/imports/:id", func(c *fiber.Ctx) error {
		return c.Render("imports/detail", fiber.Map{
			"Title": "Detalhe da Importação",
		})
	})
}

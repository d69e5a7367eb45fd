package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"fw-panel/internal/client"
	"fw-panel/internal/config"
	"fw-panel/internal/dashboard"
	"fw-panel/internal/database"
	"fw-panel/internal/handlers"
	"fw-panel/internal/models"
	"fw-panel/internal/services/orchestrator"
	"fw-panel/internal/services/scheduler"
	ws "fw-panel/internal/services/websocket"
)

func main() {
	// Load .env file if exists
	godotenv.Load()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	if _, err := database.Connect(cfg.Database.Path); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate models
	if err := database.AutoMigrate(&models.Firewall{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize orchestrator + policy catalog
	if err := orchestrator.Init(cfg); err != nil {
		log.Fatalf("Failed to initialize orchestrator: %v", err)
	}

	// Live feed: statistics snapshots plus every new log entry
	ws.InitHub(orchestrator.Statistics)
	orchestrator.SetLogSink(ws.WSHub.PublishLog)

	// Background sweeps
	scheduler.Init()

	// Dashboard controller, talking to the management API over HTTP. The
	// delete confirmation happens in the browser before the request is
	// issued, so requests that arrive here are already confirmed.
	api := client.New(cfg.API.BaseURL)
	dash := dashboard.New(api, func(string) bool { return true })
	dash.SetPolicies(orchestrator.PolicyNames())
	handlers.InitDashboard(dash)

	// Setup template engine
	engine := html.New("./web/templates", ".html")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/base",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: false,
	}))

	// Static files
	app.Static("/static", "./web/static")

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// Routes
	setupRoutes(app)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🔥 Firewall Panel starting on http://%s", addr)
	log.Printf("📊 Dashboard: http://localhost:%d/dashboard", cfg.Server.Port)
	log.Fatal(app.Listen(addr))
}

func setupRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	// Management API
	api := app.Group("/api")
	api.Get("/", handlers.HealthCheck)
	api.Get("/firewalls", handlers.GetFirewalls)
	api.Post("/firewalls/deploy", handlers.DeployFirewall)
	api.Post("/firewalls/:id/start", handlers.StartFirewall)
	api.Post("/firewalls/:id/stop", handlers.StopFirewall)
	api.Post("/firewalls/:id/configure", handlers.ConfigureFirewall)
	api.Delete("/firewalls/:id", handlers.DeleteFirewall)
	api.Get("/logs", handlers.GetLogs)
	api.Get("/statistics", handlers.GetStatistics)

	// Live feed
	app.Get("/ws/feed", websocket.New(ws.HandleWebSocket))

	// Dashboard pages
	pages := app.Group("/dashboard")
	pages.Get("/", handlers.PanelPage(dashboard.TabDashboard, "Dashboard"))
	pages.Get("/firewalls", handlers.PanelPage(dashboard.TabFirewalls, "Firewalls"))
	pages.Get("/logs", handlers.PanelPage(dashboard.TabLogs, "Logs"))
	pages.Get("/deploy", handlers.PanelPage(dashboard.TabDeploy, "Deploy"))
	pages.Post("/deploy", handlers.SubmitDeploy)
	pages.Post("/action", handlers.DispatchAction)
}

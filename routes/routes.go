package routes

import (
	"gst-billing/config"
	"gst-billing/controllers"
	"gst-billing/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp builds the fiber app with global middleware and all routes.
func NewApp(cfg *config.Config, h *controllers.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    cfg.BodyLimitBytes,
		AppName:      "gst-billing",
	})

	app.Use(fiberrecover.New())
	app.Use(requestid.New())
	app.Use(middlewares.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: false, // bearer tokens, not cookies
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		Next: func(c *fiber.Ctx) bool {
			// long-lived event streams are not counted
			return c.Path() == "/api/products/stream"
		},
	}))

	Register(app, h)
	return app
}

// Register wires all HTTP routes.
func Register(app *fiber.App, h *controllers.Handler) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	api.Post("/login", h.Login)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(h.Auth.Required())
	protected.Use(middlewares.Idempotency(h.Store.DB()))

	// Products
	protected.Get("/products", h.GetProducts)
	protected.Get("/products/stream", h.StreamProducts)
	protected.Post("/products/import", h.ImportProducts)
	protected.Get("/products/:id", h.GetProduct)
	protected.Post("/products", h.CreateProduct)
	protected.Put("/products/:id", h.UpdateProduct)
	protected.Delete("/products/:id", h.DeleteProduct)

	// Parties
	protected.Get("/parties", h.GetParties)
	protected.Post("/parties/import", h.ImportParties)
	protected.Get("/parties/:id", h.GetParty)
	protected.Post("/parties", h.CreateParty)
	protected.Put("/parties/:id", h.UpdateParty)
	protected.Delete("/parties/:id", h.DeleteParty)

	// Seller profile
	protected.Get("/settings", h.GetSettings)
	protected.Put("/settings", h.UpdateSettings)

	// Invoices are append-only: no update or delete routes.
	protected.Post("/invoices/preview", h.PreviewInvoice)
	protected.Post("/invoices", h.CreateInvoice)
	protected.Get("/invoices", h.GetInvoices)
	protected.Get("/invoices/:id", h.GetInvoice)
	protected.Get("/invoices/:id/html", h.InvoiceHTML)
	protected.Get("/invoices/:id/pdf", h.InvoicePDF)

	// Reports
	protected.Get("/dashboard", h.Dashboard)
	protected.Get("/reports/sales.xlsx", h.SalesRegister)
}

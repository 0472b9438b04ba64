package api

import (
	"fintrack/docs"
	"fintrack/internal/api/handlers"
	"fintrack/pkg/auth"
	"fintrack/pkg/config"
	"fintrack/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Transaction *handlers.TransactionHandler
	Receipt     *handlers.ReceiptHandler
	Budget      *handlers.BudgetHandler
	Goal        *handlers.GoalHandler
	Insight     *handlers.InsightHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	cfg *config.Config,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		// Multipart bodies are capped above the upload limit so the handler
		// can reply with a clean 400 instead of Fiber's 413.
		BodyLimit: int(cfg.Upload.MaxFileSize) + 1024*1024,
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
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger - importing docs registers the documentation via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Get("/auth/me", h.Auth.Me)

	transactions := protected.Group("/transactions")
	transactions.Post("", h.Transaction.Create)
	transactions.Get("", h.Transaction.List)
	transactions.Get("/summary", h.Transaction.Summary)
	transactions.Get("/charts", h.Transaction.ChartData)
	transactions.Get("/categories", h.Transaction.Categories)
	transactions.Get("/:id", h.Transaction.Get)
	transactions.Put("/:id", h.Transaction.Update)
	transactions.Delete("/:id", h.Transaction.Delete)

	uploadObserver := middleware.NewLogUploadObserver(appLogger)
	receipts := protected.Group("/receipts", middleware.UploadMonitoring(uploadObserver))
	receipts.Post("/upload", h.Receipt.Upload)
	receipts.Post("/pdf-extract", h.Receipt.ExtractPDF)
	receipts.Get("/history", h.Receipt.History)

	budgets := protected.Group("/budgets")
	budgets.Post("", h.Budget.Set)
	budgets.Get("/:month/:year", h.Budget.List)
	budgets.Delete("/:id", h.Budget.Delete)

	goals := protected.Group("/goals")
	goals.Post("", h.Goal.Create)
	goals.Get("", h.Goal.List)
	goals.Put("/:id", h.Goal.Update)
	goals.Delete("/:id", h.Goal.Delete)
	goals.Get("/:id/forecast", h.Goal.Forecast)

	protected.Get("/insights", h.Insight.GetInsights)

	return app
}

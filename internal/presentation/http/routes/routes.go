package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/config"
	domainRepo "github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/internal/presentation/http/handler"
	"github.com/sangkips/billing-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Menu     *handler.MenuHandler
	Settings *handler.SettingsHandler
	Session  *handler.SessionHandler
	Bill     *handler.BillHandler
	Report   *handler.ReportHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}
	{
		registerMenuRoutes(v1, h)

		// Settings
		v1.GET("/settings", h.Settings.GetSettings)
		v1.PUT("/settings", h.Settings.UpdateSettings)

		registerSessionRoutes(v1, h, deps)
		registerBillRoutes(v1, h)
		registerReportRoutes(v1, h)

		// Printer
		v1.GET("/printer/status", h.Printer.GetStatus)
	}

	return router
}

func registerMenuRoutes(v1 *gin.RouterGroup, h *Handlers) {
	menu := v1.Group("/menu-items")
	{
		menu.GET("", h.Menu.List)
		menu.POST("", h.Menu.Create)
		menu.GET("/:id", h.Menu.Get)
		menu.PUT("/:id", h.Menu.Update)
		menu.DELETE("/:id", h.Menu.Delete)
	}
}

func registerSessionRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	sessions := v1.Group("/sessions")
	{
		sessions.POST("", h.Session.Create)
		sessions.GET("/:id", h.Session.Get)
		sessions.DELETE("/:id", h.Session.Delete)
		sessions.POST("/:id/items", h.Session.AddItem)
		sessions.PUT("/:id/items/:menu_item_id", h.Session.SetQuantity)
		sessions.DELETE("/:id/items/:menu_item_id", h.Session.RemoveItem)
		sessions.PUT("/:id/discount", h.Session.SetDiscount)
		sessions.PUT("/:id/payment-method", h.Session.SetPaymentMethod)
		// A retried save replays the first response instead of billing twice
		sessions.POST("/:id/save", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Session.Save)
		sessions.POST("/:id/draft", h.Session.SaveDraft)
		sessions.POST("/:id/load", h.Session.Load)
		sessions.POST("/:id/clear", h.Session.Clear)
	}
}

func registerBillRoutes(v1 *gin.RouterGroup, h *Handlers) {
	bills := v1.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.GET("/drafts", h.Bill.ListDrafts)
		bills.GET("/:id", h.Bill.Get)
		bills.DELETE("/:id", h.Bill.Delete)
		bills.GET("/:id/receipt", h.Bill.Receipt)
		bills.POST("/:id/print", h.Bill.Print)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/revenue", h.Report.Revenue)
		reports.GET("/revenue/pdf", h.Report.ExportPDF)
		reports.GET("/revenue/xlsx", h.Report.ExportXLSX)
		reports.GET("/today", h.Report.Today)
	}
}

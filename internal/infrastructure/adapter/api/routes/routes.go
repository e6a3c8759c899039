package routes

import (
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups the API handlers mounted by SetupRoutes
type Handlers struct {
	Transactions *handler.TransactionHandler
	Plans        *handler.PlanHandler
	Categories   *handler.CategoryHandler
	Reports      *handler.ReportHandler
	Health       *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET(middleware.HealthPath, h.Health.Health)

	api := router.Group("/api/v1", middleware.RequireUser())

	transactions := api.Group("/transactions")
	{
		transactions.GET("", h.Transactions.List)
		transactions.POST("", h.Transactions.Create)
		transactions.GET("/near-due", h.Transactions.NearDue)
		transactions.GET("/:id", h.Transactions.Get)
		transactions.PATCH("/:id", h.Transactions.Update)
		transactions.PUT("/:id/paid", h.Transactions.SetPaid)
		transactions.POST("/:id/toggle", h.Transactions.TogglePaid)
		transactions.DELETE("/:id", h.Transactions.Delete)
	}

	plans := api.Group("/plans")
	{
		plans.GET("/:groupId", h.Plans.Get)
		plans.POST("/:groupId/pay-next", h.Plans.PayNext)
		plans.POST("/:groupId/unmark-last", h.Plans.UnmarkLast)
		plans.POST("/:groupId/toggle", h.Plans.ToggleSelected)
		plans.DELETE("/:groupId", h.Plans.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", h.Categories.List)
		categories.POST("", h.Categories.Create)
		categories.POST("/defaults", h.Categories.InitializeDefaults)
		categories.DELETE("/:id", h.Categories.Delete)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/summary", h.Reports.Summary)
		reports.GET("/categories", h.Reports.Categories)
		reports.GET("/top", h.Reports.Top)
		reports.GET("/evolution", h.Reports.Evolution)
	}

	settings := api.Group("/settings")
	{
		settings.GET("", h.Reports.GetSettings)
		settings.PUT("/monthly-goal", h.Reports.SaveMonthlyGoal)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Logger wraps ErrorHandler so it sees the final status
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS())
}

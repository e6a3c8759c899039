package handler

import (
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the dashboard aggregates and the user's settings
type ReportHandler struct {
	reports  usecase.ReportUseCase
	settings usecase.SettingsUseCase
	logger   coreport.Logger
}

// NewReportHandler creates a new report handler instance
func NewReportHandler(reports usecase.ReportUseCase, settings usecase.SettingsUseCase, logger coreport.Logger) *ReportHandler {
	return &ReportHandler{
		reports:  reports,
		settings: settings,
		logger:   logger,
	}
}

// Summary handles GET /api/v1/reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reports.Summary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSummaryResponse(summary))
}

// Categories handles GET /api/v1/reports/categories
func (h *ReportHandler) Categories(c *gin.Context) {
	totals, err := h.reports.CategoryBreakdown(
		c.Request.Context(),
		middleware.UserID(c),
		entity.PeriodToken(c.DefaultQuery("period", string(entity.PeriodThisMonth))),
		c.Query("start"),
		c.Query("end"),
		entity.TransactionType(c.DefaultQuery("type", string(entity.TypeExpense))),
	)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryTotalResponses(totals))
}

// Top handles GET /api/v1/reports/top
func (h *ReportHandler) Top(c *gin.Context) {
	n := 0
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			_ = c.Error(errs.NewValidationError("n", raw, errs.ErrInvalidRequest))
			return
		}
		n = parsed
	}

	records, err := h.reports.TopTransactions(
		c.Request.Context(),
		middleware.UserID(c),
		entity.TransactionType(c.DefaultQuery("type", string(entity.TypeExpense))),
		n,
	)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponses(records))
}

// Evolution handles GET /api/v1/reports/evolution
func (h *ReportHandler) Evolution(c *gin.Context) {
	months := 0
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			_ = c.Error(errs.NewValidationError("months", raw, errs.ErrInvalidRequest))
			return
		}
		months = parsed
	}

	series, err := h.reports.MonthlyEvolution(c.Request.Context(), middleware.UserID(c), months)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMonthTotalsResponses(series))
}

// GetSettings handles GET /api/v1/settings
func (h *ReportHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetSettings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSettingsResponse(settings))
}

// SaveMonthlyGoal handles PUT /api/v1/settings/monthly-goal
func (h *ReportHandler) SaveMonthlyGoal(c *gin.Context) {
	var req dto.SaveMonthlyGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	settings, err := h.settings.SaveMonthlyGoal(c.Request.Context(), middleware.UserID(c), req.MonthlyGoal)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSettingsResponse(settings))
}

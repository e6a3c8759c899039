package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// PlanHandler handles installment plan HTTP requests
type PlanHandler struct {
	transactions usecase.TransactionUseCase
	logger       coreport.Logger
}

// NewPlanHandler creates a new plan handler instance
func NewPlanHandler(transactions usecase.TransactionUseCase, logger coreport.Logger) *PlanHandler {
	return &PlanHandler{
		transactions: transactions,
		logger:       logger,
	}
}

// Get handles GET /api/v1/plans/:groupId
func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.transactions.GetPlan(c.Request.Context(), middleware.UserID(c), c.Param("groupId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPlanResponse(plan))
}

// PayNext handles POST /api/v1/plans/:groupId/pay-next
func (h *PlanHandler) PayNext(c *gin.Context) {
	h.respond(c, func() (*usecase.MutationResult, error) {
		return h.transactions.PayNextInstallment(c.Request.Context(), middleware.UserID(c), c.Param("groupId"))
	})
}

// UnmarkLast handles POST /api/v1/plans/:groupId/unmark-last
func (h *PlanHandler) UnmarkLast(c *gin.Context) {
	h.respond(c, func() (*usecase.MutationResult, error) {
		return h.transactions.UnmarkLastPaid(c.Request.Context(), middleware.UserID(c), c.Param("groupId"))
	})
}

// ToggleSelected handles POST /api/v1/plans/:groupId/toggle
func (h *PlanHandler) ToggleSelected(c *gin.Context) {
	var req dto.ToggleSelectedRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, func() (*usecase.MutationResult, error) {
		return h.transactions.ToggleSelected(c.Request.Context(), middleware.UserID(c), c.Param("groupId"), req.IDs)
	})
}

// Delete handles DELETE /api/v1/plans/:groupId
func (h *PlanHandler) Delete(c *gin.Context) {
	h.respond(c, func() (*usecase.MutationResult, error) {
		return h.transactions.DeletePlan(c.Request.Context(), middleware.UserID(c), c.Param("groupId"))
	})
}

func (h *PlanHandler) respond(c *gin.Context, op func() (*usecase.MutationResult, error)) {
	result, err := op()
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMutationResponse(result))
}

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

// TransactionHandler handles ledger record HTTP requests
type TransactionHandler struct {
	transactions usecase.TransactionUseCase
	logger       coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(transactions usecase.TransactionUseCase, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		logger:       logger,
	}
}

// bindJSON parses the body and records a validation error when it is malformed
func bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		_ = c.Error(errs.NewValidationError("body", "", errs.ErrInvalidRequest)).
			SetMeta(err.Error())
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    errs.ErrorCode(errs.ErrInvalidRequest),
			Kind:    string(errs.KindValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return false
	}
	return true
}

// Create handles POST /api/v1/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.transactions.Create(c.Request.Context(), middleware.UserID(c), req.ToUseCase())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewMutationResponse(result))
}

// List handles GET /api/v1/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	query := usecase.ListQuery{
		Period:   entity.PeriodToken(c.Query("period")),
		Start:    c.Query("start"),
		End:      c.Query("end"),
		Status:   usecase.StatusFilter(c.DefaultQuery("status", string(usecase.StatusAll))),
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if raw, ok := c.GetQuery("includeFullyPaid"); ok {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			_ = c.Error(errs.NewValidationError("includeFullyPaid", raw, errs.ErrInvalidRequest))
			return
		}
		query.IncludeFullyPaidGroups = &include
	}

	views, err := h.transactions.List(c.Request.Context(), middleware.UserID(c), query)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUnitResponses(views))
}

// Get handles GET /api/v1/transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	record, err := h.transactions.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(record))
}

// Update handles PATCH /api/v1/transactions/:id
func (h *TransactionHandler) Update(c *gin.Context) {
	var req dto.UpdateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.transactions.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.ToUseCase())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMutationResponse(result))
}

// SetPaid handles PUT /api/v1/transactions/:id/paid
func (h *TransactionHandler) SetPaid(c *gin.Context) {
	var req dto.SetPaidRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.transactions.SetPaid(c.Request.Context(), middleware.UserID(c), c.Param("id"), *req.Paid)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMutationResponse(result))
}

// TogglePaid handles POST /api/v1/transactions/:id/toggle
func (h *TransactionHandler) TogglePaid(c *gin.Context) {
	result, err := h.transactions.TogglePaid(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMutationResponse(result))
}

// Delete handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	result, err := h.transactions.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMutationResponse(result))
}

// NearDue handles GET /api/v1/transactions/near-due
func (h *TransactionHandler) NearDue(c *gin.Context) {
	records, err := h.transactions.NearDue(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponses(records))
}

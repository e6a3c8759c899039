package middleware

import (
	"errors"
	"net/http"

	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

type logFielder interface {
	LogFields() map[string]any
}

// ErrorHandler middleware recovers from panics and renders the last error a handler
// attached with c.Error
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": c.GetHeader("X-Request-ID"),
					"user_agent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    errs.ErrorCode(errs.ErrInternalServer),
					Kind:    string(errs.KindInternal),
					Message: "Internal server error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := errorResponse(err)

		fields := map[string]any{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": status,
			"error":  err.Error(),
		}
		var lf logFielder
		if errors.As(err, &lf) {
			for k, v := range lf.LogFields() {
				fields[k] = v
			}
		}
		if status >= http.StatusInternalServerError {
			logger.Error("Ledger operation failed", fields)
		} else {
			logger.Warn("Ledger operation rejected", fields)
		}

		c.AbortWithStatusJSON(status, body)
	}
}

// StatusFor maps an error kind to the HTTP status it is reported with
func StatusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindWriteConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	kind := errs.KindOf(err)
	body := dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Kind:    string(kind),
		Message: err.Error(),
	}

	switch kind {
	case errs.KindPartialFailure:
		var partial *errs.PartialPlanError
		if errors.As(err, &partial) {
			body.Message = "Installment plan was not fully written"
			body.Details = map[string]any{
				"groupId":     partial.GroupID,
				"requested":   partial.Requested,
				"createdIds":  partial.CreatedIDs,
				"orphanedIds": partial.OrphanedIDs,
			}
		}
	case errs.KindInternal:
		body.Message = "Internal server error"
	}
	return StatusFor(err), body
}

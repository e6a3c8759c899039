package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/dto"
	mcore "github.com/amirhossein-jamali/finance-dashboard/mocks/port/core"
)

func serve(router *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Validation", errs.NewValidationError("amount", "abc", errs.ErrInvalidAmount), http.StatusBadRequest},
		{"Missing plan", fmt.Errorf("lookup: %w", errs.ErrInstallmentPlanNotFound), http.StatusNotFound},
		{"Nothing to toggle", errs.ErrNoPaidInstallment, http.StatusConflict},
		{"Partial plan", &errs.PartialPlanError{GroupID: "g1", Err: errors.New("timeout")}, http.StatusInternalServerError},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusFor(tt.err))
		})
	}
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler(mcore.NewQuietLogger(t)))
	router.GET("/invalid", func(c *gin.Context) {
		_ = c.Error(errs.NewValidationError("amount", "abc", errs.ErrInvalidAmount))
	})
	router.GET("/partial", func(c *gin.Context) {
		_ = c.Error(&errs.PartialPlanError{
			GroupID:     "g1",
			UserID:      "user-1",
			Requested:   3,
			CreatedIDs:  []string{"a"},
			OrphanedIDs: []string{"a"},
			Err:         errors.New("timeout"),
		})
	})
	router.GET("/internal", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
	})
	router.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		_ = c.Error(errors.New("late"))
	})
	router.GET("/panic", func(*gin.Context) {
		panic("unexpected")
	})

	t.Run("Validation errors are bad requests", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/invalid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, errs.CodeInvalidAmount, body.Code)
		assert.Equal(t, string(errs.KindValidation), body.Kind)
	})

	t.Run("Partial plans list the written members", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/partial", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, errs.CodePartialFailure, body.Code)
		assert.Equal(t, "Installment plan was not fully written", body.Message)
		assert.Equal(t, "g1", body.Details["groupId"])
		assert.Equal(t, float64(3), body.Details["requested"])
		assert.Equal(t, []any{"a"}, body.Details["orphanedIds"])
	})

	t.Run("Internal errors hide their cause", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/internal", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "Internal server error", body.Message)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("Written responses are left alone", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/written", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})

	t.Run("Panics are recovered", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/panic", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, errs.CodeInternalServer, decodeError(t, w).Code)
	})
}

func TestRequireUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", RequireUser(), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})

	w := serve(router, http.MethodGet, "/me", map[string]string{UserHeader: " user-1 "})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())

	w = serve(router, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errs.CodeInvalidUserID, decodeError(t, w).Code)
}

func TestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		path   string
		level  string
		status int
	}{
		{"Successful requests", "/ok", "Info", http.StatusOK},
		{"Rejected requests", "/missing", "Warn", http.StatusNotFound},
		{"Failed requests", "/fail", "Error", http.StatusInternalServerError},
		{"Health checks", HealthPath, "Debug", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := mcore.NewMockLogger(t)
			logger.On(tt.level, mock.Anything, mock.MatchedBy(func(f map[string]any) bool {
				return f["status"] == tt.status && f["path"] == tt.path
			})).Once()

			router := gin.New()
			router.Use(Logger(logger))
			router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
			router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
			router.GET(HealthPath, func(c *gin.Context) { c.Status(http.StatusOK) })

			serve(router, http.MethodGet, tt.path, nil)
		})
	}
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, http.MethodOptions, "/ok", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), UserHeader)

	w = serve(router, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

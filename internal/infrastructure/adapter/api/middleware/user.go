package middleware

import (
	"net/http"
	"strings"

	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// UserHeader carries the id of the user a request acts for
const UserHeader = "X-User-ID"

const userIDKey = "user_id"

// RequireUser rejects requests without a user id and stores it on the context
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserHeader))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrInvalidUserID),
				Kind:    string(errs.KindValidation),
				Message: "Missing required header: " + UserHeader,
			})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the user id set by RequireUser, or "" outside of it
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

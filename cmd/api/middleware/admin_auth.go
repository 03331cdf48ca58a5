package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"car-blog/cmd/api/auth"
	"car-blog/cmd/api/dto"
	"car-blog/cmd/api/services"
	"car-blog/internal/logger"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// TokenParser verifies a credential and returns its subject and the role of
// the account behind it.
type TokenParser interface {
	ParseAccessToken(ctx context.Context, token string) (string, string, error)
}

// AdminAuthMiddleware verifies the token cookie (or bearer header) and
// requires the admin role. Lookup failures other than a bad credential
// answer 500.
func AdminAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, "Not authorized, token not provided")
			return
		}

		userID, role, err := tokens.ParseAccessToken(c.Request.Context(), token)
		if errors.Is(err, services.ErrInternal) {
			logger.ErrorWithFields("admin lookup failed", logger.Fields{
				"error":      err.Error(),
				"request_id": c.Request.Header.Get(headerRequestID),
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.Fail("Internal server error", dto.CodeInternal, "Internal server error"))
			return
		}
		if err != nil {
			logger.WarnWithFields("token parse error", logger.Fields{
				"error":      err.Error(),
				"request_id": c.Request.Header.Get(headerRequestID),
			})
			auth.AbortWithUnauthorized(c, "Invalid or expired token")
			return
		}

		if role != auth.RoleAdmin {
			logger.WarnWithFields("access denied", logger.Fields{
				"user_id":    userID,
				"role":       role,
				"request_id": c.Request.Header.Get(headerRequestID),
			})
			auth.AbortWithForbidden(c, "Access denied. Admins only.")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)

		c.Next()
	}
}

package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"car-blog/cmd/api/dto"
)

// TokenCookieName is the cookie carrying the credential.
const TokenCookieName = "token"

var (
	ErrMissingToken  = errors.New("missing_token")
	ErrMissingHeader = errors.New("missing_authorization_header")
	ErrInvalidFormat = errors.New("invalid_authorization_header")
	ErrEmptyToken    = errors.New("empty_token")
)

// ExtractToken returns the credential from the token cookie, falling back to
// an Authorization bearer header for non-browser clients.
func ExtractToken(c *gin.Context) (string, error) {
	if token, err := c.Cookie(TokenCookieName); err == nil && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token), nil
	}
	token, err := ExtractBearerToken(c)
	if errors.Is(err, ErrMissingHeader) {
		return "", ErrMissingToken
	}
	return token, err
}

// ExtractBearerToken extracts the Bearer token from the Authorization header.
func ExtractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidFormat
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

// SetTokenCookie stores token as an httpOnly cookie living as long as the token.
func SetTokenCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearTokenCookie expires the token cookie.
func ClearTokenCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookieName, "", -1, "/", "", secure, true)
}

// AbortWithUnauthorized aborts the request with a 401 envelope.
func AbortWithUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(message, dto.CodeUnauthorized, message))
}

// AbortWithForbidden aborts the request with a 403 envelope.
func AbortWithForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail(message, dto.CodeForbidden, message))
}

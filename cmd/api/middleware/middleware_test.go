package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"car-blog/cmd/api/auth"
	"car-blog/cmd/api/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokens map[string][2]string

func (s stubTokens) ParseAccessToken(_ context.Context, token string) (string, string, error) {
	if token == "db-down" {
		return "", "", fmt.Errorf("lookup: %w", services.ErrInternal)
	}
	v, ok := s[token]
	if !ok {
		return "", "", errors.New("invalid")
	}
	return v[0], v[1], nil
}

func TestAdminAuthMiddleware(t *testing.T) {
	tokens := stubTokens{
		"admin-token": {"u1", auth.RoleAdmin},
		"user-token":  {"u2", auth.RoleUser},
	}
	r := gin.New()
	r.GET("/admin", AdminAuthMiddleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID))
	})

	cases := []struct {
		name   string
		cookie string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"bad token", "nope", http.StatusUnauthorized},
		{"regular user", "user-token", http.StatusForbidden},
		{"admin", "admin-token", http.StatusOK},
		{"lookup failure", "db-down", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: auth.TokenCookieName, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestAdminAuthMiddlewareAcceptsBearer(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminAuthMiddleware(stubTokens{"t": {"u1", auth.RoleAdmin}}), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer t")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestTraceSetsHeaders(t *testing.T) {
	r := gin.New()
	r.Use(RequestTrace())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(headerRequestID))
	assert.Equal(t, "0", w.Header().Get(headerSpanID))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(headerRequestID, "given-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "given-id", w.Header().Get(headerRequestID))
}

func TestRateLimitPerIP(t *testing.T) {
	limiter := NewIPRateLimiter(60, 2)
	now := time.Unix(1718000000, 0)
	limiter.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/login", RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)
	limited := do("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), `"too_many_requests"`)

	assert.Equal(t, http.StatusOK, do("10.0.0.2").Code, "other clients keep their own budget")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code, "tokens refill over time")
}

func TestRateLimitSweepsIdleVisitors(t *testing.T) {
	limiter := NewIPRateLimiter(60, 1)
	now := time.Unix(1718000000, 0)
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.Allow("a"))
	now = now.Add(time.Hour)
	require.True(t, limiter.Allow("b"))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	_, kept := limiter.visitors["a"]
	assert.False(t, kept)
	assert.Len(t, limiter.visitors, 1)
}

func TestRateLimitNilLimiter(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsUseRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/blog/blogs/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blog/blogs/"+id, nil))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/blog/blogs/:id", http.MethodGet, "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", http.MethodGet, "404")))
}

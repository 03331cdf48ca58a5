package router

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"car-blog/cmd/api/dto"
	"car-blog/cmd/api/handlers"
	"car-blog/cmd/api/middleware"
	"car-blog/cmd/api/services"
	_ "car-blog/docs"
	"car-blog/internal/logger"
)

// Dependencies is everything the HTTP surface needs. Optional parts may be
// left zero: no Registry disables /metrics, no ClientDist disables the SPA
// fallback, no AuthLimiter disables rate limiting.
type Dependencies struct {
	BlogService *services.BlogService
	AuthService *services.AuthService

	// UploadDir is served under /<UploadPrefix>.
	UploadDir    string
	UploadPrefix string
	MaxImageSize int64

	CookieSecure bool
	ClientDist   string
	// TrustedProxies may set X-Forwarded-For. Nil trusts none, so the rate
	// limiter keys on the socket peer.
	TrustedProxies []string

	AuthLimiter *middleware.IPRateLimiter
	Registry    *prometheus.Registry
	Health      func(ctx context.Context) error
}

func New(deps Dependencies) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		logger.ErrorWithFields("invalid trusted proxies, trusting none", logger.Fields{
			"trusted_proxies": deps.TrustedProxies,
			"error":           err.Error(),
		})
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), middleware.RequestTrace())

	if deps.Registry != nil {
		metrics := middleware.NewMetrics(deps.Registry)
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := deps.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	prefix := strings.Trim(deps.UploadPrefix, "/")
	if prefix == "" {
		prefix = "uploads"
	}
	if deps.UploadDir != "" {
		r.Static("/"+prefix, deps.UploadDir)
	}

	blogOpts := handlers.BlogHandlerOptions{MaxImageSize: deps.MaxImageSize}
	limit := middleware.RateLimit(deps.AuthLimiter)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/signup", limit, handlers.SignupHandler(deps.AuthService))
		authGroup.POST("/login", limit, handlers.LoginHandler(deps.AuthService, deps.CookieSecure))
		authGroup.POST("/logout", handlers.LogoutHandler(deps.CookieSecure))
		authGroup.GET("/profile", handlers.ProfileHandler(deps.AuthService))

		blogGroup := api.Group("/blog")
		blogGroup.POST("/blogs", handlers.CreateBlogHandler(deps.BlogService, blogOpts))
		blogGroup.GET("/blogs", handlers.ListBlogsHandler(deps.BlogService))
		blogGroup.GET("/my-blogs", handlers.ListMyBlogsHandler(deps.BlogService))
		blogGroup.GET("/blogs/:id", handlers.GetBlogHandler(deps.BlogService))
		blogGroup.PUT("/blogs/:id", handlers.UpdateBlogHandler(deps.BlogService, blogOpts))
		blogGroup.PATCH("/blogs/:id", handlers.UpdateBlogHandler(deps.BlogService, blogOpts))
		blogGroup.DELETE("/blogs/:id", handlers.DeleteBlogHandler(deps.BlogService))

		adminGroup := api.Group("/admin", middleware.AdminAuthMiddleware(deps.AuthService))
		adminGroup.GET("/users", handlers.AdminListUsersHandler(deps.AuthService))
	}

	r.NoRoute(noRoute(deps.ClientDist))

	return r
}

// noRoute answers unknown API paths with a 404 envelope. Other GET requests
// are served from the built client, falling back to its index.html.
func noRoute(dist string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		isRead := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
		if dist == "" || !isRead || strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, dto.Fail("Route not found", dto.CodeNotFound, "Route not found"))
			return
		}

		file := filepath.Join(dist, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && info.Mode().IsRegular() {
			c.File(file)
			return
		}
		c.File(filepath.Join(dist, "index.html"))
	}
}

// WithCORS allows credentialed requests from clientURL.
func WithCORS(h http.Handler, clientURL string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{clientURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Span-Id"},
		AllowCredentials: true,
	}).Handler(h)
}

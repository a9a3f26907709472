package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/inkwell/blog-platform/docs"
	"github.com/inkwell/blog-platform/internal/api/handler"
	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/infrastructure/http/handlers"
	"github.com/inkwell/blog-platform/internal/pkg/token"
)

// RouterDeps collects everything the HTTP layer needs. Construction of the
// concrete services happens in main; the router only wires routes.
type RouterDeps struct {
	Auth      *handler.AuthHandler
	Blog      *handler.BlogHandler
	Health    *handlers.HealthHandler
	Readiness *handlers.HealthDependenciesHandler
	Codec     *token.Codec
	Logger    zerolog.Logger
}

// NewRouter builds the echo engine with all routes and middleware attached.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("blog"))

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/health", deps.Health.Liveness)
	e.GET("/health/ready", deps.Readiness.Readiness)

	// Login attempts are throttled per client IP to slow credential stuffing.
	loginLimiter := echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Every(12 * time.Second),
			Burst:     5,
			ExpiresIn: 3 * time.Minute,
		}),
	})

	auth := e.Group("/auth")
	auth.POST("/signup", deps.Auth.Signup)
	auth.POST("/login", deps.Auth.Login, loginLimiter)
	auth.POST("/logout", deps.Auth.Logout)

	blogs := e.Group("/blogs", middleware.Auth(deps.Codec))
	blogs.GET("", deps.Blog.List)
	blogs.POST("", deps.Blog.Create)
	blogs.GET("/:id", deps.Blog.Get)
	blogs.PUT("/:id", deps.Blog.Update)
	blogs.DELETE("/:id", deps.Blog.Delete)
	blogs.GET("/:id/activity", deps.Blog.Activity)

	return e
}

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/renovatepro/renovate-api/docs"
	"github.com/renovatepro/renovate-api/internal/api/handler"
	"github.com/renovatepro/renovate-api/internal/api/middleware"
	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

// Deps carries everything the router needs. Services are built by the caller.
type Deps struct {
	Auth      ports.AuthService
	Orders    ports.OrderService
	Catalog   ports.CatalogService
	Portfolio ports.PortfolioService
	Users     ports.UserService

	HealthChecks map[string]handler.HealthCheck
	Log          zerolog.Logger

	SecureCookie bool
	SessionTTL   time.Duration
	CORSOrigins  []string

	LoginRatePerMinute int
	LoginBurst         int

	// Registerer receives the HTTP request metrics. Defaults to the
	// Prometheus default registerer.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "renovate",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/swagger")
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, handler.CookieConfig{
		Secure: d.SecureCookie,
		MaxAge: d.SessionTTL,
	}, d.Log)
	orderHandler := handler.NewOrderHandler(d.Orders)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	portfolioHandler := handler.NewPortfolioHandler(d.Portfolio)
	userHandler := handler.NewUserHandler(d.Users)
	healthHandler := handler.NewHealthHandler(d.HealthChecks)

	requireSession := middleware.Auth(d.Auth, d.Log)
	loginLimiter := middleware.RateLimit(middleware.NewIPRateLimiter(d.LoginRatePerMinute, d.LoginBurst))

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register, loginLimiter)
	auth.POST("/login", authHandler.Login, loginLimiter)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, requireSession)

	v1 := e.Group("/v1")

	// --- Orders: every role, scoped by the service ---
	orders := v1.Group("/orders", requireSession)
	orders.GET("", orderHandler.List)
	orders.POST("", orderHandler.Create)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id", orderHandler.Update)
	orders.DELETE("/:id", orderHandler.Delete)

	// --- Service catalog: public reads ---
	catalogWriters := middleware.RBAC(domain.RoleAdmin, domain.RoleDesigner)
	v1.GET("/services", catalogHandler.List)
	v1.GET("/services/:id", catalogHandler.Get)
	v1.POST("/services", catalogHandler.Create, requireSession, catalogWriters)
	v1.PUT("/services/:id", catalogHandler.Update, requireSession, catalogWriters)
	v1.DELETE("/services/:id", catalogHandler.Delete, requireSession, catalogWriters)

	// --- Portfolio ---
	portfolio := v1.Group("/portfolio", requireSession)
	portfolio.GET("", portfolioHandler.List)
	portfolio.POST("", portfolioHandler.Create)
	portfolio.PUT("/:id", portfolioHandler.Update)
	portfolio.DELETE("/:id", portfolioHandler.Delete)

	// --- Users ---
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	users := v1.Group("/users", requireSession)
	users.GET("/by-role", userHandler.ByRole, middleware.RBAC(domain.RoleAdmin, domain.RoleDesigner))
	users.GET("", userHandler.List, adminOnly)
	users.GET("/:id", userHandler.Get, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

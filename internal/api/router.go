package api

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cloudmarket/marketplace-api/docs"
	"github.com/cloudmarket/marketplace-api/internal/api/handler"
	"github.com/cloudmarket/marketplace-api/internal/api/middleware"
	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

const bodyLimit = "1M"

// Deps is everything the router wires into handlers and middleware.
type Deps struct {
	Log      zerolog.Logger
	Tokens   ports.TokenService
	Auth     ports.AuthService
	Products ports.ProductService
	Offers   ports.OfferService
	Users    ports.UserService
	Limiter  *middleware.LoginLimiter

	// Readiness lists the dependencies pinged by GET /health/ready.
	Readiness map[string]handler.Checker

	// Registry receives the HTTP metrics and is served on /metrics. Tests
	// pass a fresh registry per router.
	Registry *prometheus.Registry

	BasePath    string
	CORSOrigins string
	Production  bool
	Started     time.Time
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Production)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: splitOrigins(d.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.Gzip())
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	if d.Registry != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "marketplace",
			Registerer: d.Registry,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: prometheus.Gatherers{d.Registry, prometheus.DefaultGatherer},
		}))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.Started)
	readinessHandler := handler.NewReadinessHandler(d.Readiness, d.Production)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- API routes, optionally mounted under BASE_PATH ---
	root := e.Group(d.BasePath)
	root.GET("/", healthHandler.Welcome)
	if d.BasePath != "" {
		root.GET("", healthHandler.Welcome)
	}

	authHandler := handler.NewAuthHandler(d.Auth)
	productHandler := handler.NewProductHandler(d.Products)
	offerHandler := handler.NewOfferHandler(d.Offers)
	userHandler := handler.NewUserHandler(d.Users)
	authMiddleware := middleware.Auth(d.Tokens)

	auth := root.Group("/auth")
	if d.Limiter != nil {
		auth.POST("/login", authHandler.Login, d.Limiter.Middleware())
	} else {
		auth.POST("/login", authHandler.Login)
	}
	auth.POST("/logout", authHandler.Logout)

	products := root.Group("/marketplace/products", authMiddleware)
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create)
	products.GET("/:id", productHandler.Get)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	offers := root.Group("/offers", authMiddleware)
	offers.GET("", offerHandler.List)
	offers.POST("", offerHandler.Create)
	offers.GET("/:id", offerHandler.Get)
	offers.PUT("/:id", offerHandler.Update)
	offers.DELETE("/:id", offerHandler.Delete)

	users := root.Group("/users", authMiddleware)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.PUT("/password", userHandler.ChangePassword)
	users.POST("", authHandler.Register, middleware.RBAC(d.Users, domain.RoleAdmin))

	return e
}

// requestLogger logs one line per request through zerolog. Bodies are never
// logged since login and password requests carry secrets.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Str("query", c.QueryString()).
				Msg("request")
			return nil
		},
	})
}

func splitOrigins(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package api

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/acmedash/billing-admin/docs"
	"github.com/acmedash/billing-admin/internal/api/handler"
	"github.com/acmedash/billing-admin/internal/api/middleware"
	"github.com/acmedash/billing-admin/internal/core/ports"
)

// httpMetrics registers the HTTP collectors with the default registry once,
// however many routers are built in the process.
var httpMetrics = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware("billing")
})

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Auth      ports.AuthService
	Invoices  ports.InvoiceService
	Queries   ports.QueryService
	Readiness map[string]handler.DependencyCheck
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(httpMetrics())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	invoiceHandler := handler.NewInvoiceHandler(deps.Invoices, deps.Queries, deps.Logger)
	customerHandler := handler.NewCustomerHandler(deps.Queries)
	dashboardHandler := handler.NewDashboardHandler(deps.Queries)

	// --- Public routes ---
	e.POST("/login", authHandler.Login)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Dashboard (bearer JWT) ---
	dash := e.Group("/dashboard", middleware.Auth(deps.JWTSecret))

	dash.GET("/revenue", dashboardHandler.Revenue)
	dash.GET("/cards", dashboardHandler.Cards)
	dash.GET("/latest-invoices", dashboardHandler.LatestInvoices)

	dash.GET("/invoices", invoiceHandler.List)
	dash.GET("/invoices/pages", invoiceHandler.Pages)
	dash.POST("/invoices", invoiceHandler.Create)
	dash.GET("/invoices/:id", invoiceHandler.Get)
	dash.PUT("/invoices/:id", invoiceHandler.Update)
	dash.DELETE("/invoices/:id", invoiceHandler.Delete)

	dash.GET("/customers", customerHandler.List)
	dash.GET("/customers/options", customerHandler.Options)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

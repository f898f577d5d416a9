package http

import (
	"context"
	"log/slog"
	"net/http"

	"marketplace/internal/core/domain/model/identity"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// PingFunc reports whether a backing service answers.
type PingFunc func(ctx context.Context) error

// RouteConfig carries what Register needs besides the use cases.
type RouteConfig struct {
	JWTSecret []byte
	Document  *openapi3.T
	Checks    map[string]PingFunc
}

// NewEcho returns an echo instance with the error handler, panic recovery
// and request logging installed.
func NewEcho(logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "Request handled",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	return e
}

// Register mounts /health, the API docs and every /api/v1 route.
func (s *Server) Register(e *echo.Echo, cfg RouteConfig) error {
	e.GET("/health", health(cfg.Checks))

	if cfg.Document != nil {
		if err := RegisterSwagger(e, cfg.Document); err != nil {
			return err
		}
	}

	v1 := e.Group("/api/v1", Authenticate(cfg.JWTSecret))
	if cfg.Document != nil {
		validate, err := ValidateRequests(cfg.Document)
		if err != nil {
			return err
		}
		v1.Use(validate)
	}

	buyer := v1.Group("/buyer", RequireRole(identity.Buyer))
	buyer.POST("/bid", s.PlaceBid)
	buyer.POST("/payment", s.RecordPayment)
	buyer.POST("/confirm-delivery", s.ConfirmDelivery)
	buyer.GET("/orders", s.GetBuyerOrders)
	buyer.GET("/orders/:orderId", s.GetOrderSummary)
	buyer.GET("/nearby-sellers", s.FindNearbySellers)

	seller := v1.Group("/seller", RequireRole(identity.Seller))
	seller.POST("/verify-pickup", s.VerifyPickup)
	seller.POST("/products", s.RegisterProduct)
	seller.PUT("/location", s.SetSellerLocation)
	seller.GET("/dashboard", s.GetSellerDashboard)

	agent := v1.Group("/agent", RequireRole(identity.Agent))
	agent.GET("/nearby-orders", s.FindNearbyOrders)
	agent.POST("/accept-order", s.AcceptOrder)
	agent.PUT("/location", s.UpdateAgentLocation)
	agent.PUT("/available", s.MarkAgentAvailable)

	return nil
}

func health(checks map[string]PingFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := http.StatusOK
		report := make(map[string]string, len(checks))
		for name, ping := range checks {
			if err := ping(c.Request().Context()); err != nil {
				status = http.StatusServiceUnavailable
				report[name] = err.Error()
				continue
			}
			report[name] = "ok"
		}
		return c.JSON(status, map[string]any{"status": http.StatusText(status), "checks": report})
	}
}

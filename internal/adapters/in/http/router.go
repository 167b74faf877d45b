package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

// RouterConfig carries the process-level collaborators of the router.
// A nil Metrics handler leaves the metrics endpoint unregistered.
type RouterConfig struct {
	Logger      *zap.Logger
	Metrics     http.Handler
	MetricsPath string
}

// NewRouter builds the echo instance with middleware, validation, error
// rendering and every route of the API.
func NewRouter(s *Server, cfg RouterConfig) *echo.Echo {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "http"))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       4 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.ByteString("stack", stack),
			)
			return err
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
				zap.String("company_id", c.Request().Header.Get(HeaderCompanyID)),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	}))

	e.GET("/health", s.Health)
	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		e.GET(path, echo.WrapHandler(cfg.Metrics))
	}

	api := e.Group("/api/v1")
	api.POST("/amendments", s.CreateAmendment)
	api.GET("/amendments", s.ListAmendments)
	api.GET("/amendments/number/:number", s.GetAmendmentByNumber)
	api.GET("/amendments/:id", s.GetAmendment)
	api.PATCH("/amendments/:id", s.UpdateAmendment)
	api.POST("/amendments/:id/decision", s.DecideAmendment)
	api.POST("/amendments/:id/cancel", s.CancelAmendment)
	api.POST("/orders/:orderId/proposals", s.ProposeChanges)
	api.POST("/orders/:orderId/received-quantity", s.AdjustReceivedQuantity)

	return e
}

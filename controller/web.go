// Package controller contains the HTTP layer: routing, middleware, request
// binding and the mapping of domain errors to responses.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/billingcat/clients/dto"
	"github.com/billingcat/clients/model"
	"github.com/billingcat/clients/service"
	"github.com/billingcat/clients/validation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// NewLogger returns the application logger.
// Development: text, debug and up. Everything else: JSON, info and up.
func NewLogger(mode string) *slog.Logger {
	if mode == model.ModeDevelopment {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// NewController is the entry point. It wires store, service and handlers and
// serves HTTP until SIGINT or SIGTERM.
func NewController(store *model.Store) error {
	cfg := store.Config
	logger := NewLogger(cfg.Mode)
	slog.SetDefault(logger)

	svc := service.NewClientService(store, cfg.DefaultRegion, logger)
	ctrl := NewClientController(svc, validation.New(store), logger)
	e := NewServer(cfg, logger, ctrl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Port, "mode", cfg.Mode)
		errc <- e.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cannot start application %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("cannot shut down server: %w", err)
	}
	return store.Close()
}

// NewServer builds the echo instance with middleware, error handler and the
// client routes. It does not start listening.
func NewServer(cfg *model.Config, logger *slog.Logger, ctrl *ClientController) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "1M"
	}

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisablePrintStack: true,
	}))
	e.Use(requestLogger(logger))

	e.HTTPErrorHandler = errorHandler(logger)

	ctrl.Register(e)
	return e
}

// requestLogger puts a request-scoped logger into the context and writes
// one access log line per request.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()
			rid := res.Header().Get(echo.HeaderXRequestID)

			// Request-scoped Logger bauen und in den Context legen
			reqLogger := logger.With(
				"request_id", rid,
			).WithGroup("http").With(
				"method", req.Method,
				"path", req.URL.Path,
				"remote_ip", c.RealIP(),
			)
			c.Set("logger", reqLogger)

			err := next(c)
			if err != nil {
				// Fehler sofort schreiben, damit der Status im Access-Log stimmt
				c.Error(err)
			}

			if shouldSkipAccessLog(c) {
				return nil
			}
			// Level anhand Status wählen
			attrs := []any{
				"status", res.Status,
				"latency_ms", float64(time.Since(start).Microseconds()) / 1000.0,
			}
			switch {
			case res.Status >= 500:
				reqLogger.Error("http_request", attrs...)
			case res.Status >= 400:
				reqLogger.Warn("http_request", attrs...)
			default:
				reqLogger.Info("http_request", attrs...)
			}
			return nil
		}
	}
}

// errorHandler: intern alles loggen, extern nur sichere Payload.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		l, _ := c.Get("logger").(*slog.Logger)
		if l == nil {
			l = logger
		}

		ae := toAppError(err)
		attrs := []any{
			"status", ae.Status,
			"code", ae.Code,
			"error", ae.Err.Error(),
		}
		if ae.Status >= 500 {
			l.Error("handler_error", attrs...)
		} else {
			l.Warn("handler_error", attrs...)
		}

		body := dto.NewErrorResponse(userMessage(ae), ae.Fields)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(ae.Status)
			return
		}
		if rerr := respond(c, ae.Status, body); rerr != nil {
			l.Error("cannot write error response", "error", rerr)
		}
	}
}

func shouldSkipAccessLog(c echo.Context) bool {
	p := c.Request().URL.Path
	switch p {
	case "/favicon.ico", "/robots.txt":
		return true
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".css", ".js", ".map", ".png", ".ico":
		return true
	}
	m := c.Request().Method
	return m == http.MethodHead || m == http.MethodOptions
}

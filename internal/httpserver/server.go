// Package httpserver hosts the translation and text-to-speech endpoints on
// Fiber.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"github.com/valpere/linguacast/internal/observability"
	"github.com/valpere/linguacast/internal/relay"
)

type Options struct {
	ListenAddr      string
	BodyLimitMB     int
	ShutdownTimeout time.Duration
	Metrics         *observability.Metrics // nil disables /metrics
	Logger          *slog.Logger
	AccessLog       io.Writer // defaults to stderr
}

// Server wraps the Fiber app and the relay service behind it.
type Server struct {
	app    *fiber.App
	relay  *relay.Service
	opts   Options
	logger *slog.Logger
}

func New(svc *relay.Service, opts Options) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("relay service is required")
	}
	if opts.BodyLimitMB <= 0 {
		opts.BodyLimitMB = 4
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.AccessLog == nil {
		opts.AccessLog = os.Stderr
	}

	s := &Server{
		relay:  svc,
		opts:   opts,
		logger: opts.Logger,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ServerHeader:          "linguacast",
		BodyLimit:             opts.BodyLimitMB * 1024 * 1024,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          s.handleError,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: opts.AccessLog,
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	if opts.Metrics != nil {
		metrics := opts.Metrics
		app.Use(func(c *fiber.Ctx) error {
			start := time.Now()
			err := c.Next()
			// Unknown paths share one label; c.Path() aliases a pooled buffer
			// and would also explode cardinality.
			route := "unmatched"
			if r := c.Route(); r != nil && r.Path != "/" {
				route = utils.CopyString(r.Path)
			}
			status := c.Response().StatusCode()
			if err != nil {
				status = statusFor(err)
			}
			metrics.RecordHTTPRequest(utils.CopyString(c.Method()), route, status, time.Since(start))
			return err
		})
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	}

	app.Get("/healthz", s.handleHealth)
	app.Post("/translate", s.handleTranslate)
	app.Post("/text-to-speech", s.handleSpeech)

	s.app = app
	return s, nil
}

// App exposes the Fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks until context cancellation or a fatal listen error occurs.
func (s *Server) Listen(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.opts.ListenAddr)
	}()

	select {
	case <-ctx.Done():
		timeout := s.opts.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := s.app.ShutdownWithContext(shutdownCtx)
		if err == nil {
			err = <-errCh
		}
		return err
	case err := <-errCh:
		return err
	}
}

// handleError renders every failure as {"error": message}.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return relay.StatusCode(err)
}

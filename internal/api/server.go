// Package api exposes the statement pipeline over HTTP with fiber.
package api

import (
	"errors"
	"strings"
	"time"

	"cardsense/cardsense-india/internal/categorizer"
	"cardsense/cardsense-india/internal/insights"
	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// UserHeader carries the authenticated user's ID. Authentication itself
// happens upstream; requests without it are rejected.
const UserHeader = "X-User-ID"

// Options configures the HTTP server.
type Options struct {
	MaxUploadBytes    int
	RequestsPerSecond float64
	Burst             int
	AllowedOrigins    []string
	SummaryTTL        time.Duration
}

// Server owns the fiber application and the handlers' collaborators.
type Server struct {
	app         *fiber.App
	uploads     *upload.Service
	analyzer    *insights.Analyzer
	categorizer *categorizer.Categorizer
	summaries   *cache.Cache
	limiter     *rate.Limiter
	logger      logging.Logger
}

// NewServer builds the fiber app and registers all routes.
func NewServer(uploads *upload.Service, analyzer *insights.Analyzer, cat *categorizer.Categorizer, opts Options, logger logging.Logger) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 * 1024 * 1024
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 10
	}
	if opts.SummaryTTL <= 0 {
		opts.SummaryTTL = 15 * time.Minute
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		uploads:     uploads,
		analyzer:    analyzer,
		categorizer: cat,
		summaries:   cache.New(opts.SummaryTTL, 2*opts.SummaryTTL),
		limiter:     rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		logger:      logging.OrDefault(logger).WithField(logging.FieldComponent, "api"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "cardsense",
		BodyLimit:             opts.MaxUploadBytes,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(opts.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, " + UserHeader,
		AllowMethods: "GET,POST,OPTIONS",
	}))
	app.Use(s.requestLogger)
	app.Use(s.rateLimit)

	s.registerRoutes(app)
	s.app = app
	return s
}

func (s *Server) registerRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/categorize", s.handleCategorize)

	statements := api.Group("/statements")
	statements.Post("/upload", s.handleUpload)
	statements.Post("/analyze", s.handleAnalyze)
	statements.Get("/summary", s.handleSummary)
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("HTTP server listening", logging.F("address", addr))
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	s.logger.Info("HTTP request",
		logging.F(logging.FieldMethod, c.Method()),
		logging.F(logging.FieldPath, c.Path()),
		logging.F(logging.FieldStatus, status),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return err
}

func (s *Server) rateLimit(c *fiber.Ctx) error {
	if !s.limiter.Allow() {
		s.logger.Warn("Rate limit exceeded",
			logging.F(logging.FieldMethod, c.Method()),
			logging.F(logging.FieldPath, c.Path()),
			logging.F("remote_addr", c.IP()))
		return c.Status(fiber.StatusTooManyRequests).JSON(errorResponse{Error: "too many requests"})
	}
	return c.Next()
}

// handleError renders errors that escape handlers, including fiber's own
// (404 for unknown routes, 413 for oversized bodies), as JSON.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		msg = fiberErr.Message
	} else {
		s.logger.WithError(err).Error("Unhandled request error", logging.F(logging.FieldPath, c.Path()))
	}
	return c.Status(code).JSON(errorResponse{Error: msg})
}

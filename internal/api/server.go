package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/legalreview/internal/review"
)

// Server represents the API server
type Server struct {
	echo *echo.Echo
	port int
}

// NewServer creates a new API server around the given review service.
func NewServer(port int, svc *review.Service) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(50))))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("Request")
			return nil
		},
	}))

	server := &Server{
		echo: e,
		port: port,
	}

	server.setupRoutes(svc)

	return server
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes(svc *review.Service) {
	// Health check endpoint
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	h := NewDocumentsHandler(svc)

	v1 := s.echo.Group("/api/v1")

	v1.POST("/documents", h.Ingest)
	v1.GET("/documents", h.List)
	v1.GET("/documents/:id", h.Get)
	v1.POST("/documents/:id/approve", h.Approve)
	v1.POST("/documents/:id/reject", h.Reject)
	v1.POST("/documents/:id/assign", h.Assign)
	v1.POST("/documents/:id/request-revision", h.RequestRevision)
	v1.POST("/documents/:id/resubmit", h.Resubmit)
	v1.POST("/documents/:id/comments", h.AddComment)
	v1.PUT("/documents/:id/priority", h.SetPriority)
	v1.GET("/statistics", h.Statistics)
}

// Start begins the API server
func (s *Server) Start() error {
	// Start server in a goroutine
	go func() {
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && err != http.ErrServerClosed {
			s.echo.Logger.Fatal("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

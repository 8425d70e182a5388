// Package devapi is a fixture implementation of the stock dashboard API. It
// serves seeded accounts and portfolios so the remote sign-in path can be
// exercised locally and in tests. It is not a production backend.
package devapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/equitydash/equitydash/internal/config"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *TokenIssuer
	config *config.Config
	logger zerolog.Logger
}

// New creates a new server instance with a seeded database
func New(cfg *config.Config, zlog zerolog.Logger) (*Server, error) {
	db, err := openDatabase(cfg.DevAPI.Database, zlog)
	if err != nil {
		return nil, err
	}

	if err := seed(db, time.Now(), seedAccounts()); err != nil {
		return nil, err
	}

	if cfg.DevAPI.JWTSecret == "" {
		zlog.Info().Msg("No DEVAPI_JWT_SECRET set - using a random secret")
	}
	tokens, err := NewTokenIssuer(cfg.DevAPI.JWTSecret)
	if err != nil {
		return nil, err
	}

	server := &Server{
		db:     db,
		tokens: tokens,
		config: cfg,
		logger: zlog,
	}

	server.setupRouter()

	return server, nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(requestIDMiddleware())
	s.router.Use(s.loggingMiddleware())

	// CORS for a browser front end on the Vite dev server
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"http://localhost:5173"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	s.router.POST("/auth/login", s.login)

	authed := s.router.Group("/")
	authed.Use(JWTAuthMiddleware(s.tokens, s.db, s.logger))
	{
		authed.GET("/auth/me", s.getCurrentUser)

		stock := authed.Group("/stock")
		stock.GET("/balances", s.listBalances)
		stock.GET("/vesting", s.listVesting)
		stock.GET("/transactions", s.listTransactions)
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", c.GetString(requestIDHeader)).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "equitydash-devapi",
	})
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close closes the database
func (s *Server) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	addr := s.config.DevAPIAddr()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		s.Close()
		return fmt.Errorf("HTTP server error: %w", err)
	case <-sigChan:
		s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	if err := s.Close(); err != nil {
		s.logger.Error().Err(err).Msg("Error closing database")
	}

	s.logger.Info().Msg("Server shutdown complete")
	return nil
}

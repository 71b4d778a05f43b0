// Package server exposes the latest pipeline results over HTTP and lets
// operators trigger a run on demand.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hacknox/teamlens/internal/config"
	"github.com/hacknox/teamlens/internal/database"
	apperrors "github.com/hacknox/teamlens/internal/errors"
	"github.com/hacknox/teamlens/internal/monitoring"
	"github.com/hacknox/teamlens/internal/pipeline"
)

// Server ties the router to its collaborators.
type Server struct {
	cfg     *config.Config
	repo    *database.Repository
	runner  *pipeline.Runner
	logger  *monitoring.Logger
	metrics *monitoring.Metrics
}

// New builds a server.
func New(cfg *config.Config, repo *database.Repository, runner *pipeline.Runner,
	logger *monitoring.Logger, metrics *monitoring.Metrics) *Server {
	return &Server{
		cfg:     cfg,
		repo:    repo,
		runner:  runner,
		logger:  logger,
		metrics: metrics,
	}
}

// Router assembles the gin engine with all middleware and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	r.Use(apperrors.ErrorHandler())

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))

	api := r.Group("/api/v1")
	api.Use(s.rateLimitMiddleware())
	{
		api.GET("/members", s.handleMembers)
		api.GET("/roles", s.handleRoles)
		api.GET("/explanations", s.handleExplanations)
		api.GET("/git", s.handleGit)
		api.GET("/meeting", s.handleMeeting)
		api.POST("/run", s.handleRun)
	}

	return r
}

// Serve runs the HTTP server until ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.RequestLogger(c.Request.Method, c.Request.URL.Path, c.ClientIP(),
			c.Writer.Status(), time.Since(start))
		s.metrics.ObserveRequest(c.FullPath(), strconv.Itoa(c.Writer.Status()))
	}
}

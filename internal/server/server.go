// Package server exposes the quiz engine over HTTP. Every endpoint except
// result saving is a pure function of its request.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/advice"
	"github.com/abhisek/shindan/internal/quizdata"
	"github.com/abhisek/shindan/internal/selector"
	"github.com/abhisek/shindan/internal/store"
	"github.com/abhisek/shindan/internal/telemetry"
)

// Deps are the collaborators a Server needs. Results and Advice may be
// nil; the matching endpoints then answer 503 and static advice.
type Deps struct {
	Data     *quizdata.Data
	Selector *selector.Selector
	Results  store.ResultRepo
	Advice   *advice.Service
	Metrics  *telemetry.Metrics
	Logger   *zap.Logger
	Version  string
}

// Server holds the gin engine and its handlers.
type Server struct {
	deps   Deps
	engine *gin.Engine
}

// New wires every route. mode is a gin mode ("debug", "release", "test").
func New(deps Deps, mode string) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Advice == nil {
		deps.Advice = advice.NewService(nil, advice.DefaultConfig(), deps.Logger)
	}
	if deps.Metrics == nil {
		deps.Metrics = telemetry.NewMetrics(false)
	}
	if mode != "" {
		gin.SetMode(mode)
	}

	s := &Server{deps: deps, engine: gin.New()}
	s.engine.Use(gin.Recovery(), s.requestLogger(), deps.Metrics.Middleware())
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))

	v1 := r.Group("/api/v1")
	{
		questions := v1.Group("/questions")
		{
			questions.GET("/initial", s.initialQuestions)
			questions.POST("/next", s.nextQuestion)
		}
		v1.POST("/paths/validate", s.validatePath)

		characters := v1.Group("/characters")
		{
			characters.GET("", s.listCharacters)
			characters.GET("/:code", s.getCharacter)
		}
		v1.GET("/compatibility", s.compatibility)

		results := v1.Group("/results")
		{
			results.POST("", s.saveResult)
			results.GET("", s.listResults)
			results.GET("/stats", s.resultStats)
			results.GET("/:id", s.getResult)
		}
		v1.POST("/advice", s.generateAdvice)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is done, then shuts down gracefully within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.deps.Logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.deps.Logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// Package server exposes scoring, report building and spreadsheet
// conversion over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/marek-kar/riskdash/pkg/analysis"
	"github.com/marek-kar/riskdash/pkg/cache"
	"github.com/marek-kar/riskdash/pkg/config"
	"github.com/marek-kar/riskdash/pkg/logging"
	"github.com/marek-kar/riskdash/pkg/metrics"
)

type Server struct {
	cfg     config.ServerConfig
	engine  *analysis.Engine
	cache   cache.Cache
	metrics *metrics.Metrics
	log     logging.Logger
	router  *gin.Engine
}

type Deps struct {
	Engine  *analysis.Engine
	Cache   cache.Cache
	Metrics *metrics.Metrics
	Logger  logging.Logger
}

// New wires the router. Missing dependencies get working defaults: the
// default engine, no cache, a private metrics registry and a no-op logger.
func New(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		cfg:     cfg.Server,
		engine:  deps.Engine,
		cache:   deps.Cache,
		metrics: deps.Metrics,
		log:     deps.Logger,
	}
	if s.log == nil {
		s.log = logging.NewNop()
	}
	if s.engine == nil {
		s.engine = analysis.DefaultEngine(analysis.Options{
			RankingLimit: cfg.Report.RankingLimit,
			Recompute:    cfg.Report.Recompute,
		}, s.log.Named("analysis"))
	}
	if s.cache == nil {
		s.cache = cache.Nop{}
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	s.router = s.routes(cfg.Metrics)
	return s
}

func (s *Server) routes(mc config.MetricsConfig) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = s.cfg.MaxUploadBytes
	r.Use(RequestID())
	r.Use(Logger(s.log))
	r.Use(Metrics(s.metrics))
	r.Use(Recovery(s.log))

	r.GET("/healthz", s.handleHealth)
	if mc.Enabled {
		r.GET(mc.Path, gin.WrapH(s.metrics.Handler()))
	}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/score", s.handleScore)
		v1.POST("/records/recompute", s.handleRecompute)
		v1.POST("/reports", s.handleReport)
		v1.POST("/rankings", s.handleRanking)
		v1.POST("/import", s.handleImport)
		v1.POST("/export", s.handleExport)
	}
	return r
}

func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("http server listening", logging.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.log.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

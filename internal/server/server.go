package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/squad-planner/internal/app/analysis"
	"github.com/preston-bernstein/squad-planner/internal/app/roster"
	"github.com/preston-bernstein/squad-planner/internal/app/sessions"
	"github.com/preston-bernstein/squad-planner/internal/app/tactics"
	"github.com/preston-bernstein/squad-planner/internal/app/teams"
	"github.com/preston-bernstein/squad-planner/internal/config"
	httpserver "github.com/preston-bernstein/squad-planner/internal/http"
	"github.com/preston-bernstein/squad-planner/internal/http/handlers"
	"github.com/preston-bernstein/squad-planner/internal/logging"
	"github.com/preston-bernstein/squad-planner/internal/mcp"
	"github.com/preston-bernstein/squad-planner/internal/metrics"
	"github.com/preston-bernstein/squad-planner/internal/store"
	"github.com/preston-bernstein/squad-planner/internal/storewatch"
	"github.com/preston-bernstein/squad-planner/internal/suggest"
)

var metricsSetup = metrics.Setup

// Watcher tracks store health in the background.
type Watcher interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() storewatch.Status
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         store.KV
	watcher       Watcher
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a server backed by the configured store.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, version string) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)

	kv, err := newStoreFactory(logger, recorder).build(ctx, cfg.Store)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(ctx)
		}
		return nil, err
	}

	srv := newServerWithStore(cfg, logger, kv, recorder, version)
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	return srv, nil
}

func newServerWithStore(cfg config.Config, logger *slog.Logger, kv store.KV, recorder *metrics.Recorder, version string) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	repo := store.NewRepository(kv)
	watcher := storewatch.New(repo, logger, cfg.Store.HealthInterval)
	return &Server{
		cfg:        cfg,
		logger:     logger,
		metrics:    recorder,
		store:      kv,
		watcher:    watcher,
		httpServer: buildHTTPServer(cfg, repo, watcher, logger, recorder, version),
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, kv store.KV, httpSrv httpServer, w Watcher) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		store:      kv,
		watcher:    w,
		httpServer: httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, repo *store.Repository, watcher Watcher, logger *slog.Logger, recorder *metrics.Recorder, version string) httpServer {
	locks := sessions.NewLocks()
	tacticsSvc := tactics.NewService(repo, locks)
	analysisSvc := analysis.NewService(repo, tacticsSvc, recorder, logger)

	catalog, err := suggest.NewCatalog(cfg.SuggestLimit)
	if err != nil {
		logging.Warn(logger, "suggestion catalog unavailable", "err", err)
	}

	handler := handlers.NewHandler(handlers.Services{
		Roster:   roster.NewService(repo, locks),
		Tactics:  tacticsSvc,
		Teams:    teams.NewService(repo, locks),
		Analysis: analysisSvc,
		Suggest:  catalog,
		Store:    repo,

		StoreStatus: watcher.Status,
	}, logger)

	opts := httpserver.Options{
		Logger:      logger,
		Recorder:    recorder,
		CORSOrigins: cfg.CORSOrigins,
		APITimeout:  cfg.Store.Timeout,
	}
	// Admin routes stay unmounted without a token.
	if cfg.AdminToken != "" {
		opts.Admin = handlers.NewAdminHandler(repo, cfg.AdminToken, logger)
	}
	if cfg.MCPEnabled {
		tools := mcp.NewTools(analysisSvc, tacticsSvc, logger)
		opts.MCP = mcp.Handler(mcp.NewServer(tools, version))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpserver.NewRouter(handler, opts),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP servers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.watcher != nil {
		s.watcher.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.watcher != nil {
		if err := s.watcher.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop store watcher", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	// Store closes after the HTTP server drains.
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logging.Error(s.logger, "store close failed", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

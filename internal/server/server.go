package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"voting-service/internal/config"
	"voting-service/internal/domain/vote"
	api "voting-service/internal/http"
	"voting-service/internal/metrics"
	"voting-service/internal/platform/database"
	"voting-service/internal/repository/postgres"
	"voting-service/internal/worker"
)

// Server is the voting application: HTTP listener, stats worker and the
// startup schema check. It holds configuration and wiring only.
type Server struct {
	cfg       config.Config
	log       *slog.Logger
	connector *database.Connector
	worker    *worker.StatsWorker
	http      *http.Server
}

func New(cfg config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	metrics.Register()

	connector := database.NewConnector(cfg.ConnectAttempts, cfg.ConnectDelay, cfg.ConnectTimeout, log)
	voteSvc := vote.NewService(postgres.NewVoteRepo(connector))

	voteCh := make(chan worker.VoteEvent, 100)
	router := api.NewRouter(voteSvc, connector, voteCh, log, cfg.VoteRateLimit)

	return &Server{
		cfg:       cfg,
		log:       log,
		connector: connector,
		worker:    worker.NewStatsWorker(voteCh, log),
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      writeTimeout(cfg),
			IdleTimeout:       60 * time.Second,
		},
	}
}

// writeTimeout covers one full connect retry loop plus the query. It is zero
// (no limit) when connection attempts have no timeout of their own.
func writeTimeout(cfg config.Config) time.Duration {
	if cfg.ConnectTimeout <= 0 {
		return 0
	}
	attempts := time.Duration(max(cfg.ConnectAttempts, 1))
	return attempts*cfg.ConnectTimeout + (attempts-1)*cfg.ConnectDelay + 15*time.Second
}

// Run prepares the schema, then serves until ctx is canceled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	if err := database.EnsureSchema(ctx, s.connector, s.log); err != nil {
		s.log.Error("schema setup failed, continuing without it", "error", err)
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	go s.worker.Run(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	s.log.Info("server stopped")
	return nil
}

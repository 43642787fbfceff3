package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"voting-service/internal/domain/vote"
	"voting-service/internal/platform/apperr"
	"voting-service/internal/worker"
)

// Pinger reports whether the vote store can be reached right now.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	voteSvc *vote.Service
	db      Pinger
	voteCh  chan<- worker.VoteEvent
	log     *slog.Logger
}

// NewRouter wires the API routes. voteRateLimit is the number of votes per
// minute accepted from a single client IP; zero disables the limiter.
func NewRouter(
	voteSvc *vote.Service,
	db Pinger,
	voteCh chan<- worker.VoteEvent,
	log *slog.Logger,
	voteRateLimit int,
) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{
		voteSvc: voteSvc,
		db:      db,
		voteCh:  voteCh,
		log:     log,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(RequestLogger(log))
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		if voteRateLimit > 0 {
			r.With(RateLimitVotes(rate.Every(time.Minute/time.Duration(voteRateLimit)), min(voteRateLimit, 3))).
				Post("/vote", h.handleVote)
		} else {
			r.Post("/vote", h.handleVote)
		}
		r.Get("/results", h.handleResults)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, apperr.Unavailable("db_unavailable", "database not configured", nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, apperr.Unavailable("db_unavailable", "database not ready", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

package worker

import (
	"context"
	"log/slog"

	"voting-service/internal/metrics"
)

type VoteEvent struct {
	VoteID int64
	Choice string
}

// StatsWorker consumes recorded votes off the request path.
type StatsWorker struct {
	Ch  <-chan VoteEvent
	log *slog.Logger
}

func NewStatsWorker(ch <-chan VoteEvent, log *slog.Logger) *StatsWorker {
	if log == nil {
		log = slog.Default()
	}
	return &StatsWorker{Ch: ch, log: log}
}

// Run blocks until ctx is done or the channel is closed.
func (w *StatsWorker) Run(ctx context.Context) {
	w.log.Info("stats worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("stats worker stopped")
			return
		case ev, ok := <-w.Ch:
			if !ok {
				w.log.Info("stats worker stopped", "reason", "channel closed")
				return
			}
			metrics.IncVote()
			w.log.Debug("processing vote event", "vote_id", ev.VoteID, "choice", ev.Choice)
		}
	}
}

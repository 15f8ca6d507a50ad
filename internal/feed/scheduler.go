package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Skotchmaster/storefront/internal/logging"
)

// Scheduler runs RefreshCatalog on a cron expression. A run that is still
// going when the next tick fires causes that tick to be skipped.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(spec string, ing *Ingestor, timeout time.Duration, l *slog.Logger) (*Scheduler, error) {
	cl := cronLogger{l: l.With("svc", "feed_scheduler")}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), l), timeout)
		defer cancel()
		_, _ = ing.RefreshCatalog(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("feed schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for the running one, or until ctx ends.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}

package scheduler

import (
	"context"
	"time"

	"github.com/valeevte/PurchaseReport/internal/logging"
	"github.com/valeevte/PurchaseReport/internal/purchases"
)

// Config конфигурация планировщика
type Config struct {
	Interval time.Duration
}

// Refresher: то, что умеет перезагружать набор (purchases.Service).
type Refresher interface {
	FetchAndStore(ctx context.Context) (purchases.Report, error)
}

// Scheduler периодически повторяет fetch-and-store. Реализует suture.Service.
type Scheduler struct {
	refresher Refresher
	interval  time.Duration
}

func New(r Refresher, cfg Config) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{refresher: r, interval: interval}
}

// Serve блокирует выполнение, пока ctx не отменён.
func (s *Scheduler) Serve(ctx context.Context) error {
	log := logging.WithComponent("scheduler")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", s.interval).Msg("scheduler started")

	// выполнить один проход сразу
	s.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("scheduler stopping, context cancelled")
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	ctx = logging.ContextWithRequestID(ctx, logging.NewRequestID())
	report, err := s.refresher.FetchAndStore(ctx)
	if err != nil {
		// ошибка не фатальна, следующий тик попробует снова
		logging.Ctx(ctx).Error().Err(err).Str("kind", purchases.ErrorKind(err)).Msg("scheduled refresh failed")
		return
	}
	logging.Ctx(ctx).Info().Int("records", len(report.Items)).Msg("scheduled refresh done")
}

func (s *Scheduler) String() string { return "refresh-scheduler" }

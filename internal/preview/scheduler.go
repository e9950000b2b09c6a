package preview

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// scheduler wraps a gocron scheduler running one periodic rebuild job.
type scheduler struct {
	s      gocron.Scheduler
	logger *slog.Logger
}

func newScheduler(interval time.Duration, fn func(), logger *slog.Logger) (*scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.RuntimeError("create scheduler").WithCause(err).Build()
	}

	job, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fn),
		gocron.WithName("periodic-rebuild"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, errors.RuntimeError("create periodic rebuild job").WithCause(err).Build()
	}

	s.Start()
	logger.Info("Scheduled periodic rebuild",
		slog.String("job_id", job.ID().String()),
		slog.Duration("interval", interval))
	return &scheduler{s: s, logger: logger}, nil
}

func (sc *scheduler) shutdown() {
	if err := sc.s.Shutdown(); err != nil {
		sc.logger.Warn("Scheduler shutdown error", logfields.Error(err))
	}
}

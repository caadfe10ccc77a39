package daylog

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const exportTimeout = 2 * time.Minute

// Scheduler re-exports the static page on a cron schedule, so the daily
// gradient of an exported site rolls over at midnight.
type Scheduler struct {
	ctx      context.Context
	cron     *cron.Cron
	app      *App
	outDir   string
	schedule string
}

// NewScheduler returns a Scheduler running in the app's time zone.
func NewScheduler(ctx context.Context, a *App, outDir string) (*Scheduler, error) {
	if err := a.Open(); err != nil {
		return nil, err
	}
	c := cron.New(
		cron.WithLocation(a.loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return &Scheduler{
		ctx:      ctx,
		cron:     c,
		app:      a,
		outDir:   outDir,
		schedule: a.Config.RebuildSchedule,
	}, nil
}

// Start exports once and then on every scheduled tick.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.export); err != nil {
		return fmt.Errorf("daylog: schedule %q: %w", s.schedule, err)
	}
	s.export()
	s.cron.Start()
	return nil
}

// Stop stops the schedule and waits for a running export to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) export() {
	ctx, cancel := context.WithTimeout(s.ctx, exportTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		s.app.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return
	default:
	}

	if err := s.app.Export(ctx, s.outDir); err != nil {
		s.app.log.ErrorContext(ctx, "Scheduled export failed",
			"error", err,
			"outDir", s.outDir)
	}
}

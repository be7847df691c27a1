package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sdloop/types"
	"sdloop/utils"

	"github.com/charmbracelet/log"
)

// CycleInterval is the pause between two passes over the job list.
const CycleInterval = time.Second

type Dispatcher interface {
	Txt2Img(ctx context.Context, job types.Txt2ImgRequest) (types.Txt2ImgResponse, error)
}

type Persister interface {
	Save(dir string, images []string) ([]string, error)
}

type RunnerOptions struct {
	Jobs       []types.Txt2ImgRequest
	SaveDir    string
	Continuous bool
	Location   *time.Location
}

// Runner walks the job list strictly in order, one job at a time. Any
// dispatch or persist error ends the run.
type Runner struct {
	client Dispatcher
	store  Persister
	stats  *Stats
	logger *log.Logger

	jobs       []types.Txt2ImgRequest
	saveDir    string
	continuous bool
	loc        *time.Location

	interval time.Duration
	pause    func(context.Context, time.Duration) error
	now      func() time.Time
}

func NewRunner(client Dispatcher, store Persister, stats *Stats, opts RunnerOptions) *Runner {
	if stats == nil {
		stats = NewStats()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return &Runner{
		client:     client,
		store:      store,
		stats:      stats,
		logger:     log.With("component", "runner", "runId", stats.RunID()),
		jobs:       opts.Jobs,
		saveDir:    opts.SaveDir,
		continuous: opts.Continuous,
		loc:        loc,
		interval:   CycleInterval,
		pause:      sleepCtx,
		now:        time.Now,
	}
}

// Run returns nil once a single pass completes with Continuous unset, or when
// ctx is cancelled. Otherwise it only returns the first job error.
func (r *Runner) Run(ctx context.Context) error {
	r.stats.setRunning(true)
	defer r.stats.setRunning(false)

	r.logger.Info("run started", "jobs", len(r.jobs), "continuous", r.continuous, "saveDir", r.saveDir)

	for cycle := 1; ; cycle++ {
		if err := r.runCycle(ctx, cycle); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				r.logger.Warn("run interrupted", "cycle", cycle)
				return nil
			}
			r.stats.failed(err)
			r.logger.Error("run failed", "cycle", cycle, "err", err)
			return err
		}
		r.stats.cycleDone()

		if !r.continuous {
			r.logger.Info("run finished", "cycles", cycle)
			return nil
		}

		r.logger.Debug("cycle done", "cycle", cycle, "pause", r.interval.String())
		if err := r.pause(ctx, r.interval); err != nil {
			r.logger.Warn("run interrupted", "cycle", cycle)
			return nil
		}
	}
}

func (r *Runner) runCycle(ctx context.Context, cycle int) error {
	for i, job := range r.jobs {
		if err := ctx.Err(); err != nil {
			return err
		}

		resp, err := r.client.Txt2Img(ctx, job)
		if err != nil {
			return fmt.Errorf("cycle %d job %d: %w", cycle, i, err)
		}

		r.logger.Info("saving images", "time", utils.ConsoleTime(r.now(), r.loc), "cycle", cycle, "job", i, "count", len(resp.Images))

		paths, err := r.store.Save(r.saveDir, resp.Images)
		if err != nil {
			return fmt.Errorf("cycle %d job %d: %w", cycle, i, err)
		}

		end := r.now()
		r.logger.Info("images saved", "time", utils.ConsoleTime(end, r.loc), "cycle", cycle, "job", i, "files", len(paths))
		r.stats.jobSaved(len(paths), end)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

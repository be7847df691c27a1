package mediator

import (
	"context"
	"fmt"

	"sdloop/config"
	"sdloop/internal/clients/sdapi"
	"sdloop/internal/services"

	"golang.org/x/sync/errgroup"
)

type App struct {
	api    *services.Api
	runner *services.Runner
	stats  *services.Stats
}

func NewApp(config config.Config) (*App, error) {

	loc, err := config.Location()
	if err != nil {
		return nil, fmt.Errorf("error creating newapp: %w", err)
	}

	stats := services.NewStats()
	client := sdapi.NewClient(config.Api, config.Timeout())
	runner := services.NewRunner(client, services.NewImageStore(), stats, services.RunnerOptions{
		Jobs:       config.Data,
		SaveDir:    config.SaveDir,
		Continuous: config.RunningState,
		Location:   loc,
	})

	app := &App{
		runner: runner,
		stats:  stats,
	}

	if config.Status.Port != "" {
		api := services.NewApi(stats, config.Status)
		if err := api.Listen(); err != nil {
			return nil, fmt.Errorf("error creating newapp: %w", err)
		}
		app.api = api
	}

	return app, nil
}

// Start blocks until the run loop returns. The status api, when enabled,
// lives exactly as long as the loop.
func (a *App) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return a.runner.Run(gctx)
	})

	if a.api != nil {
		g.Go(a.api.Serve)
		g.Go(func() error {
			<-gctx.Done()
			a.api.Shutdown()
			return nil
		})
	}

	return g.Wait()
}

func (a *App) Stats() *services.Stats {
	return a.stats
}

func (a *App) Shutdown() {
	if a.api != nil {
		a.api.Shutdown()
	}
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"sdloop/config"
	"sdloop/internal/mediator"

	"github.com/charmbracelet/log"
)

func main() {

	configPath := flag.String("config", "config.yml", "path to the job configuration")
	envPath := flag.String("env", ".env", "optional dotenv file used for ${VAR} expansion")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.Level())
	log.SetReportTimestamp(true)

	app, err := mediator.NewApp(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		app.Shutdown()
		log.Fatal(err)
	}
}

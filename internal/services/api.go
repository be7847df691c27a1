package services

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"sdloop/config"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// Api is the read-only status server. It has no routes that can change the run.
type Api struct {
	server *fiber.App
	stats  *Stats
	port   string
	ln     net.Listener

	closing  atomic.Bool
	shutdown sync.Once
}

func NewApi(stats *Stats, config config.StatusConfig) *Api {
	if stats == nil {
		stats = NewStats()
	}

	a := &Api{
		server: fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ErrorHandler:          errorHandler,
		}),
		stats:  stats,
		port:   config.Port,
	}
	a.addRoutes()
	return a
}

// Listen binds the port so that Shutdown works even if it runs before Serve.
func (a *Api) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprint(":", a.port))
	if err != nil {
		return fmt.Errorf("error binding status api: %w", err)
	}
	a.ln = ln
	return nil
}

func (a *Api) Serve() error {
	if a.ln == nil {
		if err := a.Listen(); err != nil {
			return err
		}
	}
	log.Info("status api listening", "component", "http", "addr", a.ln.Addr().String())
	err := a.server.Listener(a.ln)
	if a.closing.Load() {
		return nil
	}
	return err
}

func (a *Api) Shutdown() {
	a.shutdown.Do(func() {
		a.closing.Store(true)
		if err := a.server.Shutdown(); err != nil {
			log.Warn("status api shutdown", "component", "http", "err", err)
		}
		if a.ln != nil {
			_ = a.ln.Close()
		}
	})
}

func (a *Api) addRoutes() {
	a.server.Use(RequestLogger(a.stats.RunID()))

	a.server.Add("GET", "/health", a.Health())
	a.server.Add("GET", "/stats", a.Stats())
}

package services

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const reqIDKey = "reqId"

// RequestLogger tags every status request with an id and the run it observes.
func RequestLogger(runID string) fiber.Handler {
	base := log.With("component", "http", "runId", runID)

	return func(c *fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(reqIDKey, reqID)
		c.Set("X-Request-Id", reqID)
		c.Set("X-Run-Id", runID)

		start := time.Now()
		err := c.Next()

		fields := []any{"reqId", reqID, "method", c.Method(), "path", c.Path(), "dur", time.Since(start).String()}
		if err != nil {
			base.Warn("status request failed", append(fields, "err", err)...)
			return err
		}

		base.Info("status request", append(fields, "status", c.Response().StatusCode())...)
		return nil
	}
}

func ReqID(c *fiber.Ctx) string {
	if v, ok := c.Locals(reqIDKey).(string); ok {
		return v
	}
	return ""
}

package services

import (
	"errors"
	"net/http"
	"time"

	"sdloop/types"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// Health reports liveness together with whether the run loop is still going.
func (a *Api) Health() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		snap := a.stats.Snapshot()

		return ctx.Status(fiber.StatusOK).JSON(types.HealthResponse{
			Status:    fiber.StatusOK,
			TimeStamp: time.Now().Unix(),
			RunID:     snap.RunID,
			Running:   snap.Running,
		})
	}
}

func (a *Api) Stats() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(a.stats.Snapshot())
	}
}

// errorHandler renders unknown routes and methods as ErrorResponse JSON.
func errorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	log.Warn("status api rejected request", "component", "http", "reqId", ReqID(ctx), "status", code, "err", err)

	return ctx.Status(code).JSON(types.ErrorResponse{
		Error:   err.Error(),
		Message: http.StatusText(code),
	})
}

package middlewares

import (
	"errors"
	"time"

	"gst-billing/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger writes one access log line per request. It must run after
// the requestid middleware.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		rid, _ := c.Locals("requestid").(string)
		log := logger.WithRequestID(rid)
		status := c.Response().StatusCode()
		if err != nil {
			// the error handler runs after us and decides the final status
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		ev := log.Info()
		if status >= 500 {
			ev = log.Error()
		} else if status >= 400 {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return err
	}
}

package middlewares

import (
	"errors"

	"gst-billing/billing"
	"gst-billing/database"
	"gst-billing/importer"
	"gst-billing/ledger"
	"gst-billing/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
// Domain errors carry their own message; everything else is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	if status, ok := domainStatus(err); ok {
		body := fiber.Map{"message": err.Error()}
		var se *ledger.StockError
		if errors.As(err, &se) {
			body["product_id"] = se.ProductID
			body["available"] = se.Available
			body["requested"] = se.Requested
		}
		var le *billing.LineError
		if errors.As(err, &le) {
			body["line"] = le.Index
			body["product_id"] = le.ProductID
		}
		return c.Status(status).JSON(body)
	}

	log := logger.WithComponent("http")
	if rid, ok := c.Locals("requestid").(string); ok {
		log = log.With().Str("request_id", rid).Logger()
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("internal error")

	if errors.Is(err, ledger.ErrCommitFailed) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "invoice could not be saved; nothing was changed",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}

func domainStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, database.ErrNotFound), errors.Is(err, billing.ErrLineNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, billing.ErrDuplicateLine), errors.Is(err, ledger.ErrProductNotFound):
		return fiber.StatusConflict, true
	case errors.Is(err, billing.ErrMissingParty),
		errors.Is(err, billing.ErrEmptyInvoice),
		errors.Is(err, billing.ErrInvalidLine),
		errors.Is(err, ledger.ErrInsufficientStock),
		errors.Is(err, importer.ErrEmptySheet):
		return fiber.StatusUnprocessableEntity, true
	}
	return 0, false
}

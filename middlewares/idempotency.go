package middlewares

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gst-billing/logger"
	"gst-billing/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const IdempotencyHeader = "Idempotency-Key"

// Idempotency replays the stored response for a repeated Idempotency-Key on
// mutating requests, so a retried invoice submission cannot commit twice.
// Keys are claimed with a single conflict-free insert before the handler runs
// and are released again when the handler fails.
func Idempotency(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := strings.ToUpper(c.Method())
		if method != fiber.MethodPost && method != fiber.MethodPut && method != fiber.MethodPatch && method != fiber.MethodDelete {
			return c.Next()
		}

		key := strings.TrimSpace(c.Get(IdempotencyHeader))
		if key == "" {
			return c.Next()
		}
		if len(key) > 128 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Idempotency-Key too long"})
		}

		operator := Operator(c)
		path := c.OriginalURL()

		// method|path|body|operator
		h := sha256.New()
		h.Write([]byte(method))
		h.Write([]byte{'\n'})
		h.Write([]byte(path))
		h.Write([]byte{'\n'})
		h.Write(c.Body())
		h.Write([]byte{'\n'})
		h.Write([]byte(operator))
		reqHash := hex.EncodeToString(h.Sum(nil))

		claim := models.IdempotencyKey{
			Key:         key,
			RequestHash: reqHash,
			Method:      method,
			Path:        path,
			Operator:    operator,
			Holder:      uuid.NewString(),
		}
		existing, created, err := claimKey(db.WithContext(c.UserContext()), claim)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "idempotency lookup failed")
		}
		switch {
		case existing.RequestHash != reqHash:
			return fiber.NewError(fiber.StatusConflict, "Idempotency-Key reuse with different request")
		case existing.ResponseStatus != 0:
			c.Set("Idempotent-Replayed", "true")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(existing.ResponseStatus).Send(existing.ResponseBody)
		case !created:
			return fiber.NewError(fiber.StatusConflict, "request with this Idempotency-Key is still in progress")
		}

		log := logger.WithComponent("idempotency")
		if err := c.Next(); err != nil {
			// Forget the key so the client may retry after a failure.
			releaseKey(db, claim, log)
			return err
		}

		status := c.Response().StatusCode()
		if status >= 400 {
			releaseKey(db, claim, log)
			return nil
		}
		now := time.Now().UTC()
		resp := c.Response().Body()
		blob := make([]byte, len(resp))
		copy(blob, resp)
		if err := db.Model(&models.IdempotencyKey{}).
			Where("idempotency_key = ? AND holder = ?", key, claim.Holder).
			Updates(map[string]any{
				"response_status": status,
				"response_body":   blob,
				"completed_at":    &now,
			}).Error; err != nil {
			log.Warn().Err(err).Str("key", key).Msg("storing response failed")
		}
		return nil
	}
}

// claimKey inserts rec unless its key already exists, then reads the row
// back. created reports whether this call's insert won. The insert never
// fails on a duplicate key, so tx stays usable on postgres.
func claimKey(tx *gorm.DB, rec models.IdempotencyKey) (models.IdempotencyKey, bool, error) {
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "idempotency_key"}},
		DoNothing: true,
	}).Create(&rec).Error; err != nil {
		return models.IdempotencyKey{}, false, err
	}
	var existing models.IdempotencyKey
	if err := tx.Where("idempotency_key = ?", rec.Key).First(&existing).Error; err != nil {
		return models.IdempotencyKey{}, false, err
	}
	return existing, existing.Holder == rec.Holder, nil
}

// releaseKey drops a pending claim so the request can be retried.
func releaseKey(db *gorm.DB, rec models.IdempotencyKey, log zerolog.Logger) {
	err := db.Where("idempotency_key = ? AND holder = ? AND response_status = 0", rec.Key, rec.Holder).
		Delete(&models.IdempotencyKey{}).Error
	if err != nil {
		log.Error().Err(err).Str("key", rec.Key).Msg("releasing idempotency key failed; retries will see it in progress")
	}
}

package middlewares

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
	tokenQuery   = "access_token"

	// OperatorKey is the fiber Locals key holding the authenticated operator.
	OperatorKey = "operator"
)

var ErrNoSecret = errors.New("JWT secret not configured (set JWT_SECRET_KEY or JWT_SECRET)")

// Claims is the token payload; the subject is the operator name.
type Claims struct {
	jwt.RegisteredClaims
}

// Auth signs and checks operator bearer tokens.
type Auth struct {
	secret []byte
	ttl    time.Duration
}

func NewAuth(secret string) (*Auth, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	return &Auth{secret: []byte(secret), ttl: 24 * time.Hour}, nil
}

// Required validates a Bearer token, enforces HS256, and populates c.Locals(OperatorKey).
// GET requests may pass the token as ?access_token= instead.
func (a *Auth) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var raw string
		h := c.Get(authHeader)
		switch {
		case h == "" && c.Method() == fiber.MethodGet && c.Query(tokenQuery) != "":
			// EventSource cannot set headers
			raw = c.Query(tokenQuery)
		case h == "" || !strings.HasPrefix(strings.ToLower(h), strings.ToLower(bearerPrefix)):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "missing/invalid Authorization header"})
		default:
			raw = strings.TrimSpace(h[len(bearerPrefix):])
		}
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid bearer token"})
		}

		parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		var claims Claims
		token, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		if strings.TrimSpace(claims.Subject) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token missing subject"})
		}

		c.Locals(OperatorKey, claims.Subject)
		return c.Next()
	}
}

// GenerateJWT signs a new HS256 token for the operator, expiring in 24h.
func (a *Auth) GenerateJWT(operator string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operator,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Operator returns the authenticated operator name, or "" on public routes.
func Operator(c *fiber.Ctx) string {
	op, _ := c.Locals(OperatorKey).(string)
	return op
}

package middleware

import (
	"errors"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// Locals keys set by AuthRequired.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

const bearerPrefix = "Bearer "

var (
	ErrNoCredentials   = errors.New("no bearer credentials")
	ErrMalformedBearer = errors.New("authorization header is not a bearer token")
)

var unauthorizedMessage = map[error]string{
	ErrNoCredentials:   "Missing authorization header",
	ErrMalformedBearer: "Invalid authorization header format",
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return "", ErrNoCredentials
	}
	token, ok := strings.CutPrefix(header, bearerPrefix)
	token = strings.TrimSpace(token)
	if !ok || token == "" || strings.ContainsRune(token, ' ') {
		return "", ErrMalformedBearer
	}
	return token, nil
}

// AuthRequired rejects requests without a valid JWT and exposes the caller's
// id and role through c.Locals.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := BearerToken(c)
		if err != nil {
			return unauthorized(c, unauthorizedMessage[err])
		}

		claims, err := utils.ValidateToken(token, secret)
		if err != nil {
			log.WithField("path", c.Path()).Debugf("rejected token: %s", err)
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message})
}

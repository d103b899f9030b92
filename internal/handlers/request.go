package handlers

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// flexID is an identifier clients send either as a JSON number or as a numeric string.
type flexID int64

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*id = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*id = flexID(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = flexID(n)
	return nil
}

func parseProfileUserID(c *fiber.Ctx) (int64, error) {
	userIDStr, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(userIDStr, 10, 64)
}

// requireCaller checks that id names the authenticated user. When it does not, the
// response is already written and ok is false.
func requireCaller(c *fiber.Ctx, id int64) (ok bool, err error) {
	actorID, err := parseProfileUserID(c)
	if err != nil {
		return false, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if actorID != id {
		return false, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	return true, nil
}

// queryID reads a required positive id from the query string. present is false when
// the parameter is absent or blank.
func queryID(c *fiber.Ctx, key string) (id int64, present bool, err error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false, nil
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err == nil && id <= 0 {
		err = strconv.ErrRange
	}
	return id, true, err
}

func paramID(c *fiber.Ctx, key string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(key), 10, 64)
	return id, err == nil && id > 0
}

// parseOptionalInt returns 0 for an empty value so services can apply their defaults.
func parseOptionalInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

// serverError renders a data access failure with the underlying message attached.
func serverError(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   message,
		"details": err.Error(),
	})
}

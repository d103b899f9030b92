package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/metrics"
	"github.com/TheOmegaWolf/fitness-tracker-backend/pkg/utils"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthRequired(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals(LocalUserID), "role": c.Locals(LocalRole)})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	app := newAuthApp()
	token, err := utils.GenerateToken("42", "trainer", testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "42", body["user_id"])
	assert.Equal(t, "trainer", body["role"])
}

func TestAuthRequiredRejects(t *testing.T) {
	app := newAuthApp()
	otherToken, err := utils.GenerateToken("42", "user", "another-secret")
	require.NoError(t, err)

	cases := map[string]string{
		"missing":      "",
		"wrong scheme": "Token abc",
		"bad token":    "Bearer not-a-jwt",
		"wrong secret": "Bearer " + otherToken,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.NotEmpty(t, decodeBody(t, resp)["error"])
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		err    error
	}{
		{header: "", err: ErrNoCredentials},
		{header: "Basic dXNlcjpwYXNz", err: ErrMalformedBearer},
		{header: "Bearer ", err: ErrMalformedBearer},
		{header: "Bearer a b", err: ErrMalformedBearer},
		{header: "Bearer abc.def", token: "abc.def"},
		{header: "  Bearer abc.def  ", token: "abc.def"},
	}
	for _, tc := range cases {
		t.Run(tc.header, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				token, err := BearerToken(c)
				assert.ErrorIs(t, err, tc.err)
				assert.Equal(t, tc.token, token)
				return nil
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			_, err := app.Test(req)
			require.NoError(t, err)
		})
	}
}

type testRequestRateLimiter struct {
	// key to remaining allowance
	limits map[string]int
	err    error
}

func (l *testRequestRateLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	if l.err != nil {
		return nil, l.err
	}
	res := &redis_rate.Result{Limit: limit, RetryAfter: 1500 * time.Millisecond}
	if l.limits[key] > 0 {
		res.Allowed = 1
		l.limits[key]--
	}
	return res, nil
}

func TestRateLimit(t *testing.T) {
	limiter := &testRequestRateLimiter{limits: map[string]int{"rate::login::0.0.0.0": 2}}
	m := metrics.NewTestManager()
	app := fiber.New()
	app.Post("/login", RateLimit(limiter, "login", 10, m), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("Retry-After"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRateLimited))
}

func TestRateLimitFailsOpen(t *testing.T) {
	app := fiber.New()
	app.Post("/login", RateLimit(&testRequestRateLimiter{err: errors.New("redis down")}, "login", 10, nil), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTimeoutSetsDeadline(t *testing.T) {
	app := fiber.New()
	app.Get("/slow", Timeout(50*time.Millisecond), func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		if !ok || time.Until(deadline) > 50*time.Millisecond {
			return c.SendStatus(fiber.StatusTeapot)
		}
		<-c.UserContext().Done()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": c.UserContext().Err().Error()})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/slow", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestErrorHandlerAndRecover(t *testing.T) {
	m := metrics.NewTestManager()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(Recover(m))
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("kaboom")
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return errors.New("disk on fire")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterHandleRequestPanic))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	body := decodeBody(t, resp)
	assert.Equal(t, "disk on fire", body["details"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, decodeBody(t, resp)["error"])
}

func TestErrorHandlerMethodNotAllowed(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/only-get", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/only-get", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "Method Not Allowed", decodeBody(t, resp)["error"])
}

func TestRequestLogCountsRenderedStatus(t *testing.T) {
	m := metrics.NewTestManager()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(RequestLog(m))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "/missing", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "/ok", "204")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.GaugeRequests))
}

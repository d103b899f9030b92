package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocsApp(t *testing.T, env string) *fiber.App {
	t.Helper()
	app := fiber.New()
	require.NoError(t, registerDocsRoutes(app, &config.Config{AppEnv: env, EnableDocs: true}))
	return app
}

func getDocs(t *testing.T, app *fiber.App, target, ifNoneMatch string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if ifNoneMatch != "" {
		req.Header.Set(fiber.HeaderIfNoneMatch, ifNoneMatch)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestDocsPageEmbedsSpec(t *testing.T) {
	app := newDocsApp(t, "development")

	for _, target := range []string{"/docs", "/docs/"} {
		resp, body := getDocs(t, app, target, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, target)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
		assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "default-src 'none'")
		assert.Contains(t, body, "/api/activity")
	}
}

func TestDocsSpecServedAsYAML(t *testing.T) {
	resp, body := getDocs(t, newDocsApp(t, "development"), "/docs/openapi.yaml", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/yaml")
	assert.Equal(t, string(openAPISpec), body)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderETag))
}

func TestDocsConditionalRequests(t *testing.T) {
	app := newDocsApp(t, "development")
	first, _ := getDocs(t, app, "/docs/openapi.yaml", "")
	etag := first.Header.Get(fiber.HeaderETag)
	require.NotEmpty(t, etag)

	cases := map[string]int{
		etag:               http.StatusNotModified,
		"W/" + etag:        http.StatusNotModified,
		`"stale", ` + etag: http.StatusNotModified,
		"*":                http.StatusNotModified,
		`"stale"`:          http.StatusOK,
	}
	for header, want := range cases {
		resp, body := getDocs(t, app, "/docs/openapi.yaml", header)
		assert.Equal(t, want, resp.StatusCode, header)
		if want == http.StatusNotModified {
			assert.Empty(t, body, header)
		}
	}
}

func TestDocsHiddenOutsideDevelopment(t *testing.T) {
	app := newDocsApp(t, "production")
	for _, target := range []string{"/docs", "/docs/openapi.yaml"} {
		resp, _ := getDocs(t, app, target, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, target)
	}
}

package routes

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/config"
	"github.com/gofiber/fiber/v2"
)

//go:embed openapi.yaml
var openAPISpec []byte

const (
	docsTitle     = "Fitness Tracker API"
	docsSpecPath  = "/docs/openapi.yaml"
	docsPageCSP   = "default-src 'none'; style-src 'unsafe-inline'; base-uri 'none'; form-action 'none'; frame-ancestors 'none'"
	docsSpecCSP   = "default-src 'none'; base-uri 'none'; form-action 'none'; frame-ancestors 'none'"
	mimeYAMLUTF8  = "application/yaml; charset=utf-8"
	docsCacheRule = "no-cache"
)

var docsPage = template.Must(template.New("docs").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}</title>
<style>
body { margin: 0 auto; max-width: 72rem; padding: 2rem 1rem; font-family: system-ui, sans-serif; color: #1b2420; }
pre { padding: 1rem; overflow: auto; background: #f2f4f1; border-radius: 8px; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>{{ .Title }}</h1>
<p>Download the raw document at <a href="{{ .SpecPath }}">{{ .SpecPath }}</a>.</p>
<pre>{{ .Spec }}</pre>
</body>
</html>
`))

// staticDoc is a pre-rendered response body served with a strong ETag.
type staticDoc struct {
	body        []byte
	etag        string
	contentType string
	csp         string
	disposition string
}

func newStaticDoc(body []byte, contentType, csp string) staticDoc {
	sum := sha256.Sum256(body)
	return staticDoc{
		body:        body,
		etag:        `"` + hex.EncodeToString(sum[:16]) + `"`,
		contentType: contentType,
		csp:         csp,
	}
}

func (d staticDoc) handler(c *fiber.Ctx) error {
	c.Set(fiber.HeaderETag, d.etag)
	c.Set(fiber.HeaderCacheControl, docsCacheRule)
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Content-Security-Policy", d.csp)
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("X-Robots-Tag", "noindex, nofollow")

	if etagMatches(c.Get(fiber.HeaderIfNoneMatch), d.etag) {
		c.Status(fiber.StatusNotModified)
		return nil
	}

	c.Set(fiber.HeaderContentType, d.contentType)
	if d.disposition != "" {
		c.Set(fiber.HeaderContentDisposition, d.disposition)
	}
	return c.Send(d.body)
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// registerDocsRoutes serves the OpenAPI document in development only.
func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	var page bytes.Buffer
	err := docsPage.Execute(&page, struct {
		Title, SpecPath, Spec string
	}{docsTitle, docsSpecPath, string(openAPISpec)})
	if err != nil {
		return fmt.Errorf("render docs page: %w", err)
	}

	index := newStaticDoc(page.Bytes(), fiber.MIMETextHTMLCharsetUTF8, docsPageCSP)
	spec := newStaticDoc(openAPISpec, mimeYAMLUTF8, docsSpecCSP)
	spec.disposition = `inline; filename="openapi.yaml"`

	app.Get("/docs", index.handler)
	app.Get("/docs/", index.handler)
	app.Get(docsSpecPath, spec.handler)
	return nil
}

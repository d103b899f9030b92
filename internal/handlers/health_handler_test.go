package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/gofiber/fiber/v2"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func TestHealthWithoutRedis(t *testing.T) {
	app := fiber.New()
	app.Get("/health", NewHealthHandler(stubPinger{}, nil).Check)

	resp := doJSON(t, app, http.MethodGet, "/health", nil)
	expectStatus(t, resp, http.StatusOK)

	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHealthPingsRedis(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")

	app := fiber.New()
	app.Get("/health", NewHealthHandler(stubPinger{}, client).Check)

	expectStatus(t, doJSON(t, app, http.MethodGet, "/health", nil), http.StatusOK)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("redis expectations: %v", err)
	}
}

func TestHealthReportsFailingDependency(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetErr(errors.New("connection refused"))

	cases := []struct {
		name    string
		handler *HealthHandler
		want    string
	}{
		{"postgres", NewHealthHandler(stubPinger{err: errors.New("pool closed")}, nil), "postgres"},
		{"redis", NewHealthHandler(stubPinger{}, client), "redis"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", tc.handler.Check)

			resp := doJSON(t, app, http.MethodGet, "/health", nil)
			expectStatus(t, resp, http.StatusServiceUnavailable)

			var body map[string]string
			decodeJSON(t, resp, &body)
			if body["dependency"] != tc.want || body["status"] != "unavailable" {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

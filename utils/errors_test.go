package utils_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/carebook/carebook-api/utils"
)

func TestRenderErrorHidesInternalDetail(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return utils.RenderError(c, errors.New("pq: connection to host=db-internal failed"))
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if strings.Contains(string(body), "db-internal") {
		t.Fatalf("internal detail leaked to caller: %s", body)
	}
	if !strings.Contains(string(body), "Internal server error") {
		t.Fatalf("expected opaque message, got: %s", body)
	}
}

func TestRenderErrorKeepsDomainMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return utils.RenderError(c, utils.ConflictError("Slot already taken"))
	})

	req := httptest.NewRequest(http.MethodGet, "/conflict", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "Slot already taken") {
		t.Fatalf("domain message missing from body: %s", body)
	}
}

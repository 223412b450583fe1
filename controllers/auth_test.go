package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/carebook/carebook-api/db"
	"github.com/carebook/carebook-api/models"
	"github.com/carebook/carebook-api/routes"
)

var migrateOnce sync.Once

func setup(t *testing.T) *fiber.App {
	t.Helper()
	_ = godotenv.Load("../.env")
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set")
	}
	migrateOnce.Do(db.Migrate)

	app := fiber.New()
	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAppointmentRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func testEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@test.com", prefix, uuid.New().String()[:8])
}

func TestRegisterPatientAndLogin(t *testing.T) {
	app := setup(t)
	email := testEmail("patient")

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "Test Patient",
		"email":    email,
		"password": "testpass123",
		"role":     "patient",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status: got %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if created["token"] == "" || created["role"] != "patient" {
		t.Fatalf("unexpected register response: %v", created)
	}

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    email,
		"password": "testpass123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    email,
		"password": "wrongpass",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status: got %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestRegisterDoctorCreatesProfile(t *testing.T) {
	app := setup(t)
	email := testEmail("doctor")

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name":           "Dr. Test",
		"email":          email,
		"password":       "testpass123",
		"role":           "doctor",
		"specialization": "Dermatology",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status: got %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		t.Fatalf("doctor account not persisted: %v", err)
	}
	var profile models.DoctorProfile
	if err := db.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("doctor profile not created: %v", err)
	}
	if profile.Specialization != "Dermatology" {
		t.Fatalf("wrong specialization: %q", profile.Specialization)
	}
}

func TestRegisterDoctorWithoutSpecializationLeavesNoOrphan(t *testing.T) {
	app := setup(t)
	email := testEmail("orphan")

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "Dr. Orphan",
		"email":    email,
		"password": "testpass123",
		"role":     "doctor",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("register status: got %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	var count int64
	db.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count != 0 {
		t.Fatalf("expected no account persisted, found %d", count)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setup(t)
	email := testEmail("dup")

	body := fiber.Map{
		"name":     "Test Patient",
		"email":    email,
		"password": "testpass123",
		"role":     "patient",
	}
	if resp := postJSON(t, app, "/auth/register", body); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register status: got %d", resp.StatusCode)
	}
	if resp := postJSON(t, app, "/auth/register", body); resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register status: got %d, want %d", resp.StatusCode, http.StatusConflict)
	}
}

func TestRegisterConcurrentDuplicateEmail(t *testing.T) {
	app := setup(t)
	email := testEmail("race")

	buf, err := json.Marshal(fiber.Map{
		"name":     "Test Patient",
		"email":    email,
		"password": "testpass123",
		"role":     "patient",
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	const attempts = 4
	statuses := make([]int, attempts)
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(buf))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			if err != nil {
				errs[i] = err
				return
			}
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("attempt %d: request failed: %v", i, err)
		}
	}

	created, conflicted := 0, 0
	for i, status := range statuses {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			t.Fatalf("attempt %d: unexpected status %d", i, status)
		}
	}
	if created != 1 || conflicted != attempts-1 {
		t.Fatalf("expected 1 created and %d conflicts, got %d/%d", attempts-1, created, conflicted)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	app := setup(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "Test Admin",
		"email":    testEmail("admin"),
		"password": "testpass123",
		"role":     "admin",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("register status: got %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

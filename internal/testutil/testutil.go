// Package testutil holds the shared fixtures for package tests: an in-memory
// store and helpers for driving a fiber app.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notary-records/internal/config"
	"github.com/localnerve/notary-records/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database. The pool is pinned to a
// single connection so every statement sees the same memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	return newDB(t, "sqlite")
}

// NewPureDB is NewDB on the cgo-free driver
func NewPureDB(t *testing.T) *gorm.DB {
	t.Helper()
	return newDB(t, "sqlite-pure")
}

func newDB(t *testing.T, dbType string) *gorm.DB {
	t.Helper()

	dialector, err := database.Dialector(&config.Config{DBType: dbType, DBDatabase: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to build dialector: %v", err)
	}

	gormConfig := database.GormConfig()
	gormConfig.Logger = logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// Do sends a request to app. A non-nil body is encoded as JSON and a
// non-empty token is sent as a bearer credential.
func Do(t *testing.T, app *fiber.App, method, target string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

// AssertStatus verifies the HTTP status code
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status %d, got %d", expected, resp.StatusCode)
	}
}

// ParseJSON decodes the response body into the target
func ParseJSON(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	defer resp.Body.Close()

	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("Failed to decode JSON: %v. Body: %s", err, string(body))
	}
}

// Body decodes the response into a generic map
func Body(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	ParseJSON(t, resp, &out)
	return out
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

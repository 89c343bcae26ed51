// e2e_test.go
//
// A role-based records service for notary signing operations
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notary-records.
// notary-records is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notary-records is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notary-records.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

//go:build integration

package router_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-resty/resty/v2"
	"github.com/localnerve/notary-records/internal/database"
	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/repository"
	"github.com/localnerve/notary-records/internal/router"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type entity struct {
	ID     uint64 `json:"id"`
	Status string `json:"status"`
}

type envelope struct {
	Message    string `json:"message"`
	Ok         bool   `json:"ok"`
	Token      string `json:"token"`
	Type       string `json:"type"`
	User       entity `json:"user"`
	Customer   entity `json:"customer"`
	Assignment entity `json:"assignment"`
}

// TestEndToEnd drives a listening service backed by postgres and redis:
//
//	go test -tags integration ./internal/router/...
func TestEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}
	ctx := context.Background()
	if err := testutil.DockerAvailable(ctx); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	containers, err := testutil.StartContainers(ctx, testutil.ContainerOptions{DBType: "postgres", Redis: true, Logf: t.Logf})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := containers.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate containers: %v", err)
		}
	})

	cfg := containers.Config
	cfg.ServiceName = "notary_e2e"
	cfg.CORSOrigins = "*"

	db, err := database.Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, database.AutoMigrate(db))

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer client.Close()
	blacklist := services.NewRedisBlacklist(client, cfg.ServiceName)

	creds := services.NewCredentials("e2e-secret", bcrypt.MinCost, time.Hour)
	app := router.New(router.Deps{
		Config:      cfg,
		DB:          db,
		Credentials: creds,
		Blacklist:   blacklist,
		Redis:       blacklist,
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.ShutdownWithTimeout(5 * time.Second) })

	api := resty.New().
		SetBaseURL(fmt.Sprintf("http://%s", ln.Addr())).
		SetTimeout(10 * time.Second)

	call := func(method, path, token string, body any) (*resty.Response, envelope) {
		t.Helper()
		var out envelope
		req := api.R().SetResult(&out).SetError(&out)
		if token != "" {
			req.SetAuthToken(token)
		}
		if body != nil {
			req.SetBody(body)
		}
		resp, err := req.Execute(method, path)
		require.NoError(t, err)
		return resp, out
	}

	t.Run("HealthCheck", func(t *testing.T) {
		result := services.HealthCheck(ctx, cfg, db, blacklist, zap.NewNop())
		assert.Equal(t, "healthy", result.Status, "%+v", result)
		assert.Equal(t, "ok", result.Redis)

		resp, _ := call(http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
	})

	// employees are provisioned out of band
	store := repository.NewStore(db)
	digest, err := creds.HashPassword("staff-password")
	require.NoError(t, err)
	staff := &models.User{
		Email: "staff@example.com", FirstName: "Sta", LastName: "Ff", PhoneNumber: "555-0001",
		Password: digest, IsEmployee: true, IsActiveEmployee: true,
	}
	require.NoError(t, store.Users.Create(ctx, staff))

	var notaryToken, staffToken string
	var notaryID, assignmentID, customerID uint64

	t.Run("RegisterAndLogin", func(t *testing.T) {
		resp, out := call(http.MethodPost, "/user/register", "", map[string]any{"user": map[string]any{
			"email": "notary@example.com", "password": "notary-password",
			"firstName": "Nora", "lastName": "Public", "phoneNumber": "555-0002",
		}})
		require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
		notaryToken = out.Token

		resp, out = call(http.MethodPost, "/user/login", "", map[string]any{"user": map[string]any{
			"email": "staff@example.com", "password": "staff-password",
		}})
		require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
		staffToken = out.Token

		resp, out = call(http.MethodGet, "/user/profile", notaryToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
		notaryID = out.User.ID
	})

	t.Run("InactiveNotaryIsKeptOut", func(t *testing.T) {
		resp, _ := call(http.MethodGet, "/assignment/all", notaryToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode())

		resp, _ = call(http.MethodPut, "/user/update", staffToken, map[string]any{"user": map[string]any{
			"userId": notaryID, "isActiveNotary": true,
		}})
		require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	})

	t.Run("EmployeeOrdersSigning", func(t *testing.T) {
		resp, out := call(http.MethodPost, "/customer/add", staffToken, map[string]any{"customer": map[string]any{
			"name": "Acme Escrow", "phoneNumber": "555-0100", "email": "escrow@example.com", "customerType": "escrow",
		}})
		require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
		customerID = out.Customer.ID

		resp, out = call(http.MethodPost, "/assignment/add", staffToken, map[string]any{"assignment": map[string]any{
			"customerId": customerID, "fileNumber": "ESC-1", "dueDate": "2026-12-01",
			"contactName": "Pat", "contactPhoneNumber": "555-0101", "contactEmail": "pat@example.com",
			"meetingAddress": "1 Main St", "rate": "175.00", "type": "purchase", "status": "open",
		}})
		require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
		assignmentID = out.Assignment.ID
	})

	t.Run("NotaryAccepts", func(t *testing.T) {
		resp, _ := call(http.MethodPut, "/assignment/update", notaryToken, map[string]any{"assignment": map[string]any{
			"assignmentId": assignmentID, "customerId": customerID, "status": "accepted",
		}})
		require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())

		resp, out := call(http.MethodGet, fmt.Sprintf("/assignment?assignmentId=%d&customerId=%d", assignmentID, customerID), notaryToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
		assert.Equal(t, "accepted", out.Assignment.Status)
	})

	t.Run("LogoutRevokesToken", func(t *testing.T) {
		resp, _ := call(http.MethodPost, "/user/logout", notaryToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())

		resp, _ = call(http.MethodGet, "/user/profile", notaryToken, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	})

	t.Run("PrometheusMetrics", func(t *testing.T) {
		resp, err := api.R().Get("/metrics")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
		assert.Contains(t, resp.String(), `service="notary_e2e"`)
	})

	t.Run("SwaggerUI", func(t *testing.T) {
		resp, err := api.R().Get("/swagger/index.html")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
	})
}

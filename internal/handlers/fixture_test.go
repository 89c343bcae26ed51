package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notary-records/internal/config"
	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/repository"
	"github.com/localnerve/notary-records/internal/router"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testSecret   = "handler-test-secret"
	testPassword = "correct horse battery staple"
)

type fixture struct {
	t     *testing.T
	app   *fiber.App
	db    *gorm.DB
	store *repository.Store
	creds *services.Credentials
	redis *miniredis.Miniredis
	seq   int
}

type fixtureOption func(*router.Deps, *testing.T) *miniredis.Miniredis

// withBlacklist backs logout with an in-process redis
func withBlacklist(d *router.Deps, t *testing.T) *miniredis.Miniredis {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	blacklist := services.NewRedisBlacklist(client, "test")
	d.Blacklist = blacklist
	d.Redis = blacklist
	return mr
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	creds := services.NewCredentials(testSecret, bcrypt.MinCost, time.Hour)
	deps := router.Deps{
		Config: &config.Config{
			ServiceName: "notary-records-test",
			CORSOrigins: "*",
			DBType:      "sqlite",
			DBDatabase:  ":memory:",
		},
		DB:          db,
		Credentials: creds,
	}

	f := &fixture{t: t, db: db, store: repository.NewStore(db), creds: creds}
	for _, opt := range opts {
		if mr := opt(&deps, t); mr != nil {
			f.redis = mr
		}
	}
	f.app = router.New(deps)
	return f
}

// user seeds a user with the given flags and returns it with a session token
func (f *fixture) user(flags models.RoleFlags) (*models.User, string) {
	f.t.Helper()
	f.seq++

	digest, err := f.creds.HashPassword(testPassword)
	require.NoError(f.t, err)

	u := &models.User{
		Email:            fmt.Sprintf("user%d@example.com", f.seq),
		FirstName:        "First",
		LastName:         fmt.Sprintf("Last%d", f.seq),
		PhoneNumber:      "555-0100",
		Password:         digest,
		IsNotary:         flags.IsNotary,
		IsActiveNotary:   flags.IsActiveNotary,
		IsEmployee:       flags.IsEmployee,
		IsActiveEmployee: flags.IsActiveEmployee,
		IsSuper:          flags.IsSuper,
	}
	require.NoError(f.t, f.store.Users.Create(context.Background(), u))

	token, err := f.creds.IssueToken(u.ID)
	require.NoError(f.t, err)
	return u, token
}

func (f *fixture) notary() (*models.User, string) {
	return f.user(models.RoleFlags{IsNotary: true, IsActiveNotary: true})
}

func (f *fixture) employee() (*models.User, string) {
	return f.user(models.RoleFlags{IsEmployee: true, IsActiveEmployee: true})
}

func (f *fixture) super() (*models.User, string) {
	return f.user(models.RoleFlags{IsEmployee: true, IsActiveEmployee: true, IsSuper: true})
}

// customer seeds a customer directly in the store
func (f *fixture) customer(email string) *models.Customer {
	f.t.Helper()
	c := &models.Customer{Name: "Acme Title", PhoneNumber: "555-0199", Email: email, CustomerType: "title"}
	require.NoError(f.t, f.store.Customers.Create(context.Background(), c))
	return c
}

// assignment seeds an assignment for customerID, held by notaryID when non-nil
func (f *fixture) assignment(customerID uint64, notaryID *uint64, fileNumber string) *models.Assignment {
	f.t.Helper()
	rate, err := models.NewRate("150.00")
	require.NoError(f.t, err)

	a := &models.Assignment{
		FileNumber:         fileNumber,
		DueDate:            "2026-11-02",
		ContactName:        "Pat Signer",
		ContactPhoneNumber: "555-0142",
		ContactEmail:       "pat@example.com",
		MeetingAddress:     "1 Main St",
		Rate:               rate,
		Type:               "refinance",
		Status:             "open",
		CustomerID:         customerID,
		UserID:             notaryID,
	}
	require.NoError(f.t, f.store.Assignments.Create(context.Background(), a))
	return a
}

func (f *fixture) do(method, target string, body any, token string) *http.Response {
	f.t.Helper()
	return testutil.Do(f.t, f.app, method, target, body, token)
}

// expect checks the status and returns the decoded envelope
func (f *fixture) expect(resp *http.Response, status int) map[string]any {
	f.t.Helper()
	body := testutil.Body(f.t, resp)
	require.Equal(f.t, status, resp.StatusCode, "body: %v", body)
	return body
}

// fields returns the envelope's field list as strings
func fields(body map[string]any) []string {
	raw, _ := body["fields"].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

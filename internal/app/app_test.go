package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"karoo-backend/internal/access"
	"karoo-backend/internal/config"
	"karoo-backend/internal/middleware"
	"karoo-backend/internal/models"
	"karoo-backend/internal/seed"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*gorm.DB, *redis.Client) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Agent{}, &models.Property{},
		&models.Inquiry{}, &models.Review{}, &models.SavedSearch{},
		&models.SystemSettings{},
	))
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return db, rdb
}

func testConfig() *config.Config {
	return &config.Config{
		Env:           "test",
		SessionSecret: "test-secret",
	}
}

func TestHealthEndpoint(t *testing.T) {
	db, rdb := setupApp(t)
	app, err := CreateTestApp(testConfig(), db, rdb)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicListingRoute(t *testing.T) {
	db, rdb := setupApp(t)
	app, err := CreateTestApp(testConfig(), db, rdb)
	require.NoError(t, err)

	seeder := &seed.Service{DB: db}
	res := seeder.SeedAll(context.Background())
	require.Empty(t, res.Errors)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/properties/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []models.Property `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, 5)
}

func TestProtectedRouteRequiresSession(t *testing.T) {
	db, rdb := setupApp(t)
	app, err := CreateTestApp(testConfig(), db, rdb)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func login(t *testing.T, app *fiber.App, email, password string) *http.Cookie {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck
		}
	}
	t.Fatal("no session cookie on login response")
	return nil
}

func TestSeedEndpointRoleScoped(t *testing.T) {
	db, rdb := setupApp(t)
	app, err := CreateTestApp(testConfig(), db, rdb)
	require.NoError(t, err)

	seeder := &seed.Service{DB: db}
	require.Empty(t, seeder.SeedAll(context.Background()).Errors)

	// Fixture accounts share one password.
	adminCookie := login(t, app, "admin@karoo.properties", seed.FixturePassword)
	userCookie := login(t, app, "thabo@example.com", seed.FixturePassword)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/seed", nil)
	req.AddCookie(userCookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/seed", nil)
	req.AddCookie(adminCookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPromoteRoleEndpoint(t *testing.T) {
	db, rdb := setupApp(t)
	app, err := CreateTestApp(testConfig(), db, rdb)
	require.NoError(t, err)

	seeder := &seed.Service{DB: db}
	require.Empty(t, seeder.SeedAll(context.Background()).Errors)
	adminCookie := login(t, app, "admin@karoo.properties", seed.FixturePassword)

	payload, _ := json.Marshal(map[string]string{"email": "anna@example.com", "role": "agent"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/promote-role", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(adminCookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var promoted models.User
	require.NoError(t, db.Where("email = ?", "anna@example.com").First(&promoted).Error)
	assert.Equal(t, access.RoleAgent.String(), promoted.Role)
}

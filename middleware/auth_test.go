package middleware

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"learnhub-backend/config"
	"learnhub-backend/models"
	"learnhub-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "testsecret"}
}

func newAuthApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", AuthMiddleware(cfg), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": UserID(c)})
	})
	return app
}

func TestAuthMiddlewareAcceptsGeneratedToken(t *testing.T) {
	cfg := testConfig()
	app := newAuthApp(cfg)

	token, err := utils.GenerateJWTToken(42, cfg)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		UserID uint `json:"user_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, uint(42), body.UserID)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	app := newAuthApp(testConfig())

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
}

func TestAuthMiddlewareRejectsForeignSignature(t *testing.T) {
	app := newAuthApp(testConfig())

	token, err := utils.GenerateJWTToken(42, &config.Config{JWTSecret: "othersecret"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminMiddlewareRejectsMissingToken(t *testing.T) {
	cfg := testConfig()
	app := fiber.New()
	app.Get("/admin", AdminMiddleware(nil, cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminMiddlewareChecksRole(t *testing.T) {
	cfg := &config.Config{
		DBHost:     envOr("TEST_DB_HOST", "localhost"),
		DBPort:     envOr("TEST_DB_PORT", "5432"),
		DBUser:     envOr("TEST_DB_USER", "postgres"),
		DBPassword: envOr("TEST_DB_PASSWORD", "postgres"),
		DBName:     envOr("TEST_DB_NAME", "learnhub_test"),
		JWTSecret:  "testsecret",
	}
	db, err := utils.InitDB(cfg)
	if err != nil {
		t.Skip("test database unavailable, skipping database-backed tests")
	}
	require.NoError(t, db.AutoMigrate(&models.User{}))

	n := time.Now().UnixNano()
	admin := models.User{
		Username:     fmt.Sprintf("admin%d", n),
		Email:        fmt.Sprintf("admin%d@example.com", n),
		PasswordHash: "x",
		Role:         "admin",
	}
	require.NoError(t, db.Create(&admin).Error)
	learner := models.User{
		Username:     fmt.Sprintf("learner%d", n),
		Email:        fmt.Sprintf("learner%d@example.com", n),
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&learner).Error)

	app := fiber.New()
	app.Get("/admin", AdminMiddleware(db, cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	adminToken, err := utils.GenerateJWTToken(admin.ID, cfg)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	learnerToken, err := utils.GenerateJWTToken(learner.ID, cfg)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", learnerToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
}

func envOr(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Subscription{}))
	return db
}

// newGatedApp mounts the handler behind a stub auth layer that plants the
// caller's token the way the JWT middleware does.
func newGatedApp(userID uuid.UUID, gate fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID.String()})
		c.Locals("user", token)
		return c.Next()
	})
	app.Get("/gated", gate, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "tier": c.Locals("subscription_tier")})
	})
	return app
}

func activateSubscription(t *testing.T, db *gorm.DB, userID uuid.UUID, tier string) {
	t.Helper()
	sub := models.Subscription{
		ID:               uuid.New(),
		UserID:           userID,
		Tier:             tier,
		Status:           "active",
		CurrentPeriodEnd: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&sub).Error)
}

func TestPremiumRequiredRejectsFreeUsers(t *testing.T) {
	db := newTestDB(t)
	app := newGatedApp(uuid.New(), PremiumRequired(db))

	resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body struct {
		Success   bool   `json:"success"`
		Error     string `json:"error"`
		IsPremium bool   `json:"isPremium"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Premium subscription required", body.Error)
	assert.False(t, body.IsPremium)
}

func TestPremiumRequiredRejectsExpiredSubscriptions(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	sub := models.Subscription{
		ID:               uuid.New(),
		UserID:           userID,
		Tier:             models.TierPremium,
		Status:           "active",
		CurrentPeriodEnd: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&sub).Error)

	app := newGatedApp(userID, PremiumRequired(db))
	resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestPremiumRequiredPassesActivePremium(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	activateSubscription(t, db, userID, models.TierPremium)

	app := newGatedApp(userID, PremiumRequired(db))
	resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Tier string `json:"tier"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, models.TierPremium, body.Tier)
}

func TestSubscriptionTierDefaultsToFree(t *testing.T) {
	db := newTestDB(t)
	app := newGatedApp(uuid.New(), SubscriptionTier(db))

	resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Tier string `json:"tier"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, models.TierFree, body.Tier)
}

func TestSubscriptionTierResolvesPro(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	activateSubscription(t, db, userID, models.TierPro)

	app := newGatedApp(userID, SubscriptionTier(db))
	resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Tier string `json:"tier"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, models.TierPro, body.Tier)
}

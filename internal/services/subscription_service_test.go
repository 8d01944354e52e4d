package services

import (
	"testing"
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/config"
	"github.com/Krosebrook/lifesync-sub000/internal/dto"
	"github.com/Krosebrook/lifesync-sub000/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSubscriptionService(t *testing.T) *SubscriptionService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Subscription{}))
	cfg := &config.Config{
		PremiumProductIDs: "lifesync_premium_monthly, lifesync_premium_yearly",
		ProProductIDs:     "lifesync_pro_monthly",
	}
	return NewSubscriptionService(db, cfg)
}

func TestTierForProduct(t *testing.T) {
	svc := newSubscriptionService(t)

	assert.Equal(t, models.TierPremium, svc.TierForProduct("lifesync_premium_monthly"))
	assert.Equal(t, models.TierPremium, svc.TierForProduct("lifesync_premium_yearly"))
	assert.Equal(t, models.TierPro, svc.TierForProduct("lifesync_pro_monthly"))
	assert.Equal(t, models.TierFree, svc.TierForProduct("some_unknown_sku"))
}

func TestWebhookPurchaseThenExpiration(t *testing.T) {
	svc := newSubscriptionService(t)

	user := models.User{ID: uuid.New(), Email: "sub@example.com", Password: "x"}
	require.NoError(t, svc.db.Create(&user).Error)

	future := time.Now().Add(30 * 24 * time.Hour).UnixMilli()
	err := svc.HandleWebhookEvent(&dto.RevenueCatEvent{
		Type:           "INITIAL_PURCHASE",
		AppUserID:      user.ID.String(),
		ProductID:      "lifesync_premium_monthly",
		PurchasedAtMs:  time.Now().UnixMilli(),
		ExpirationAtMs: future,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TierPremium, svc.ActiveTier(user.ID))

	err = svc.HandleWebhookEvent(&dto.RevenueCatEvent{
		Type:      "EXPIRATION",
		AppUserID: user.ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.TierFree, svc.ActiveTier(user.ID))
}

func TestWebhookRenewalUpgradesTier(t *testing.T) {
	svc := newSubscriptionService(t)

	user := models.User{ID: uuid.New(), Email: "renew@example.com", Password: "x"}
	require.NoError(t, svc.db.Create(&user).Error)

	now := time.Now()
	err := svc.HandleWebhookEvent(&dto.RevenueCatEvent{
		Type:           "INITIAL_PURCHASE",
		AppUserID:      user.ID.String(),
		ProductID:      "lifesync_premium_monthly",
		PurchasedAtMs:  now.UnixMilli(),
		ExpirationAtMs: now.Add(30 * 24 * time.Hour).UnixMilli(),
	})
	require.NoError(t, err)

	err = svc.HandleWebhookEvent(&dto.RevenueCatEvent{
		Type:           "RENEWAL",
		AppUserID:      user.ID.String(),
		ProductID:      "lifesync_pro_monthly",
		PurchasedAtMs:  now.UnixMilli(),
		ExpirationAtMs: now.Add(60 * 24 * time.Hour).UnixMilli(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.TierPro, svc.ActiveTier(user.ID))
}

func TestWebhookIgnoresUnknownEvents(t *testing.T) {
	svc := newSubscriptionService(t)

	assert.NoError(t, svc.HandleWebhookEvent(&dto.RevenueCatEvent{Type: "TEST"}))
}

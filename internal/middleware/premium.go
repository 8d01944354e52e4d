package middleware

import (
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/Krosebrook/lifesync-sub000/internal/dto"
	"github.com/Krosebrook/lifesync-sub000/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PremiumRequired gates handlers that need an active premium or pro
// subscription. Free users get a 403 with isPremium:false so the client can
// route straight to the paywall.
func PremiumRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := authz.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
		}

		var sub models.Subscription
		err = db.Scopes(authz.ForUser(userID)).
			Where("tier IN ? AND status = ? AND current_period_end > ?",
				[]string{models.TierPremium, models.TierPro}, "active", time.Now()).
			Order("current_period_end DESC").
			First(&sub).Error
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success":   false,
				"error":     "Premium subscription required",
				"isPremium": false,
			})
		}

		c.Locals("subscription_tier", sub.Tier)
		return c.Next()
	}
}

// SubscriptionTier resolves the caller's tier into locals without gating.
// Free users pass through with "free"; handlers branch on the value.
func SubscriptionTier(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := authz.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
		}

		tier := models.TierFree
		var sub models.Subscription
		err = db.Scopes(authz.ForUser(userID)).
			Where("tier IN ? AND status = ? AND current_period_end > ?",
				[]string{models.TierPremium, models.TierPro}, "active", time.Now()).
			Order("current_period_end DESC").
			First(&sub).Error
		if err == nil {
			tier = sub.Tier
		}

		c.Locals("subscription_tier", tier)
		return c.Next()
	}
}

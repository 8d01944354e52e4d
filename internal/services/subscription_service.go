package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/config"
	"github.com/Krosebrook/lifesync-sub000/internal/dto"
	"github.com/Krosebrook/lifesync-sub000/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionService struct {
	db              *gorm.DB
	premiumProducts map[string]bool
	proProducts     map[string]bool
}

func NewSubscriptionService(db *gorm.DB, cfg *config.Config) *SubscriptionService {
	return &SubscriptionService{
		db:              db,
		premiumProducts: productSet(cfg.PremiumProductIDs),
		proProducts:     productSet(cfg.ProProductIDs),
	}
}

func productSet(csv string) map[string]bool {
	set := make(map[string]bool)
	for _, p := range strings.Split(csv, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			set[trimmed] = true
		}
	}
	return set
}

// TierForProduct maps a store product ID to a subscription tier.
func (s *SubscriptionService) TierForProduct(productID string) string {
	if s.proProducts[productID] {
		return models.TierPro
	}
	if s.premiumProducts[productID] {
		return models.TierPremium
	}
	return models.TierFree
}

// ActiveTier returns the caller's current tier; free when no active row.
func (s *SubscriptionService) ActiveTier(userID uuid.UUID) string {
	var sub models.Subscription
	err := s.db.
		Where("user_id = ? AND status = ? AND current_period_end > ?", userID, "active", time.Now()).
		Order("current_period_end DESC").
		First(&sub).Error
	if err != nil {
		return models.TierFree
	}
	return sub.Tier
}

func (s *SubscriptionService) HandleWebhookEvent(event *dto.RevenueCatEvent) error {
	switch event.Type {
	case "INITIAL_PURCHASE":
		return s.handleInitialPurchase(event)
	case "RENEWAL":
		return s.handleRenewal(event)
	case "CANCELLATION":
		return s.handleCancellation(event)
	case "EXPIRATION":
		return s.handleExpiration(event)
	default:
		return nil
	}
}

func (s *SubscriptionService) handleInitialPurchase(event *dto.RevenueCatEvent) error {
	sub := models.Subscription{
		ID:                 uuid.New(),
		RevenueCatID:       event.AppUserID,
		ProductID:          event.ProductID,
		Tier:               s.TierForProduct(event.ProductID),
		Status:             "active",
		CurrentPeriodStart: msToTime(event.PurchasedAtMs),
		CurrentPeriodEnd:   msToTime(event.ExpirationAtMs),
	}

	var user models.User
	if err := s.db.Where("id = ?", event.AppUserID).First(&user).Error; err == nil {
		sub.UserID = user.ID
	}

	return s.db.Create(&sub).Error
}

func (s *SubscriptionService) handleRenewal(event *dto.RevenueCatEvent) error {
	var sub models.Subscription
	if err := s.db.Where("revenuecat_id = ?", event.AppUserID).First(&sub).Error; err != nil {
		return fmt.Errorf("subscription not found for renewal: %w", err)
	}

	return s.db.Model(&sub).Updates(map[string]interface{}{
		"status":               "active",
		"tier":                 s.TierForProduct(event.ProductID),
		"current_period_end":   msToTime(event.ExpirationAtMs),
		"current_period_start": msToTime(event.PurchasedAtMs),
	}).Error
}

func (s *SubscriptionService) handleCancellation(event *dto.RevenueCatEvent) error {
	return s.db.Model(&models.Subscription{}).
		Where("revenuecat_id = ?", event.AppUserID).
		Update("status", "cancelled").Error
}

func (s *SubscriptionService) handleExpiration(event *dto.RevenueCatEvent) error {
	return s.db.Model(&models.Subscription{}).
		Where("revenuecat_id = ?", event.AppUserID).
		Update("status", "expired").Error
}

func msToTime(ms int64) time.Time {
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond))
}

package gamification

import (
	"github.com/Krosebrook/lifesync-sub000/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GamificationPlugin struct{}

func New() *GamificationPlugin {
	return &GamificationPlugin{}
}

func (p *GamificationPlugin) ID() string { return "gamification" }

func (p *GamificationPlugin) Models() []interface{} {
	return []interface{}{
		&BadgeDefinition{},
		&UserBadgeProgress{},
		&Profile{},
		&Achievement{},
	}
}

func (p *GamificationPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewGamificationService(db)
	handler := NewGamificationHandler(svc)

	router.Get("/gamification/profile", handler.GetProfile)
	router.Post("/gamification/points", handler.AwardPoints)
	router.Get("/gamification/badges", handler.ListBadges)
	router.Post("/gamification/badges/check", handler.CheckBadges)
	router.Get("/gamification/achievements", handler.ListAchievements)
}

func (p *GamificationPlugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewGamificationService(db)
	handler := NewGamificationHandler(svc)

	router.Post("/gamification/badges/initialize", handler.SeedBadges)
}

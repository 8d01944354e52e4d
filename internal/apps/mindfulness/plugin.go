package mindfulness

import (
	"github.com/Krosebrook/lifesync-sub000/internal/ai"
	"github.com/Krosebrook/lifesync-sub000/internal/config"
	"github.com/Krosebrook/lifesync-sub000/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MindfulnessPlugin struct{}

func New() *MindfulnessPlugin {
	return &MindfulnessPlugin{}
}

func (p *MindfulnessPlugin) ID() string { return "mindfulness" }

func (p *MindfulnessPlugin) Models() []interface{} {
	return []interface{}{
		&Practice{},
		&Meditation{},
	}
}

func (p *MindfulnessPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewMindfulnessService(db, ai.NewClient(cfg))
	handler := NewMindfulnessHandler(svc)

	router.Post("/mindfulness/practices", handler.CreatePractice)
	router.Get("/mindfulness/practices", handler.ListPractices)
	router.Put("/mindfulness/practices/:id", handler.UpdatePractice)
	router.Delete("/mindfulness/practices/:id", handler.DeletePractice)
	router.Get("/mindfulness/stats", handler.Stats)
	router.Get("/mindfulness/meditations", middleware.SubscriptionTier(db), handler.ListMeditations)
	router.Post("/mindfulness/suggestions", handler.SuggestPractices)
}

func (p *MindfulnessPlugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewMindfulnessService(db, ai.NewClient(cfg))
	handler := NewMindfulnessHandler(svc)

	router.Post("/mindfulness/meditations/initialize", handler.SeedLibrary)
}

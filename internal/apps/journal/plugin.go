package journal

import (
	"github.com/Krosebrook/lifesync-sub000/internal/ai"
	"github.com/Krosebrook/lifesync-sub000/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type JournalPlugin struct{}

func New() *JournalPlugin {
	return &JournalPlugin{}
}

func (p *JournalPlugin) ID() string { return "journal" }

func (p *JournalPlugin) Models() []interface{} {
	return []interface{}{
		&JournalEntry{},
	}
}

func (p *JournalPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewJournalService(db, ai.NewClient(cfg))
	handler := NewJournalHandler(svc)

	router.Post("/journal", handler.Create)
	router.Get("/journal", handler.List)
	router.Get("/journal/:id", handler.Get)
	router.Put("/journal/:id", handler.Update)
	router.Delete("/journal/:id", handler.Delete)
	router.Post("/journal/analyze", handler.AnalyzeEntries)
	router.Post("/journal/sentiment", handler.AnalyzeSentiment)
}

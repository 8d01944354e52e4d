package insights

import (
	"github.com/Krosebrook/lifesync-sub000/internal/ai"
	"github.com/Krosebrook/lifesync-sub000/internal/config"
	"github.com/Krosebrook/lifesync-sub000/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InsightsPlugin struct{}

func New() *InsightsPlugin {
	return &InsightsPlugin{}
}

func (p *InsightsPlugin) ID() string { return "insights" }

func (p *InsightsPlugin) Models() []interface{} {
	return []interface{}{
		&WeeklySummary{},
	}
}

func (p *InsightsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewInsightService(db, ai.NewClient(cfg))
	handler := NewInsightHandler(svc)

	router.Post("/insights/mood-report", handler.GenerateMoodReport)
	router.Post("/insights/coaching", handler.GenerateCoaching)
	router.Post("/insights/premium-report", middleware.PremiumRequired(db), handler.GeneratePremiumReport)
	router.Post("/insights/weekly-summary", handler.GenerateWeeklySummary)
	router.Get("/insights/weekly-summaries", handler.ListWeeklySummaries)
	router.Post("/insights/suggestions/goals", handler.SuggestGoals)
	router.Post("/insights/suggestions/habits", handler.SuggestHabits)
	router.Post("/insights/suggestions/from-journal", handler.SuggestFromJournal)
}

package goals

import (
	"github.com/Krosebrook/lifesync-sub000/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GoalsPlugin struct{}

func New() *GoalsPlugin {
	return &GoalsPlugin{}
}

func (p *GoalsPlugin) ID() string { return "goals" }

func (p *GoalsPlugin) Models() []interface{} {
	return []interface{}{
		&Goal{},
	}
}

func (p *GoalsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewGoalService(db)
	handler := NewGoalHandler(svc)

	router.Post("/goals", handler.Create)
	router.Get("/goals", handler.List)
	router.Get("/goals/stats", handler.Stats)
	router.Put("/goals/:id", handler.Update)
	router.Delete("/goals/:id", handler.Delete)
}

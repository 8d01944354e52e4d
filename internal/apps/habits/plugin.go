package habits

import (
	"github.com/Krosebrook/lifesync-sub000/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HabitsPlugin struct{}

func New() *HabitsPlugin {
	return &HabitsPlugin{}
}

func (p *HabitsPlugin) ID() string { return "habits" }

func (p *HabitsPlugin) Models() []interface{} {
	return []interface{}{
		&Habit{},
		&HabitLog{},
	}
}

func (p *HabitsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewHabitService(db)
	handler := NewHabitHandler(svc)

	router.Post("/habits", handler.Create)
	router.Get("/habits", handler.List)
	router.Get("/habits/stats", handler.Stats)
	router.Put("/habits/:id", handler.Update)
	router.Delete("/habits/:id", handler.Delete)
	router.Post("/habits/:id/logs", handler.LogCompletion)
}

package encouragements

import (
	"github.com/Krosebrook/lifesync-sub000/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EncouragementsPlugin struct{}

func New() *EncouragementsPlugin {
	return &EncouragementsPlugin{}
}

func (p *EncouragementsPlugin) ID() string { return "encouragements" }

func (p *EncouragementsPlugin) Models() []interface{} {
	return []interface{}{
		&Encouragement{},
	}
}

func (p *EncouragementsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewEncouragementService(db)
	handler := NewEncouragementHandler(svc)

	router.Post("/encouragements", handler.Send)
	router.Get("/encouragements/received", handler.ListReceived)
	router.Get("/encouragements/sent", handler.ListSent)
	router.Post("/encouragements/:id/read", handler.MarkRead)
}

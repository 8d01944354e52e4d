package mindfulness

import (
	"errors"

	"github.com/Krosebrook/lifesync-sub000/internal/ai"
	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/Krosebrook/lifesync-sub000/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MindfulnessHandler struct {
	mindfulnessService *MindfulnessService
}

func NewMindfulnessHandler(mindfulnessService *MindfulnessService) *MindfulnessHandler {
	return &MindfulnessHandler{mindfulnessService: mindfulnessService}
}

func (h *MindfulnessHandler) CreatePractice(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	var req CreatePracticeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	practice, err := h.mindfulnessService.CreatePractice(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidDuration),
			errors.Is(err, ErrInvalidMood), errors.Is(err, ErrInvalidDate):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to create practice"))
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "practice": practice})
}

func (h *MindfulnessHandler) ListPractices(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	practices, err := h.mindfulnessService.ListPractices(userID, c.QueryInt("limit", 30))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to list practices"))
	}

	return c.JSON(fiber.Map{"success": true, "practices": practices, "total": len(practices)})
}

func (h *MindfulnessHandler) UpdatePractice(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	practiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid practice id"))
	}

	var req UpdatePracticeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	practice, err := h.mindfulnessService.UpdatePractice(userID, practiceID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPracticeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		case errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidDuration), errors.Is(err, ErrInvalidMood):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to update practice"))
		}
	}

	return c.JSON(fiber.Map{"success": true, "practice": practice})
}

func (h *MindfulnessHandler) DeletePractice(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	practiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid practice id"))
	}

	if err := h.mindfulnessService.DeletePractice(userID, practiceID); err != nil {
		if errors.Is(err, ErrPracticeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to delete practice"))
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *MindfulnessHandler) Stats(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	stats, err := h.mindfulnessService.Stats(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to compute mindfulness stats"))
	}

	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

// ListMeditations serves the shared library. Premium items are included only
// when the premium middleware put a paid tier in locals.
func (h *MindfulnessHandler) ListMeditations(c *fiber.Ctx) error {
	if _, err := authz.GetUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	tier, _ := c.Locals("subscription_tier").(string)
	premium := tier == "premium" || tier == "pro"

	meditations, err := h.mindfulnessService.ListMeditations(premium, c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to list meditations"))
	}

	return c.JSON(fiber.Map{"success": true, "meditations": meditations, "total": len(meditations)})
}

func (h *MindfulnessHandler) SuggestPractices(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	suggestions, err := h.mindfulnessService.SuggestPractices(c.Context(), userID)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Errorf("AI suggestions are not available"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to generate suggestions"))
	}

	return c.JSON(fiber.Map{"success": true, "suggestions": suggestions})
}

// SeedLibrary handles the admin meditation-library seed. Safe to re-run.
func (h *MindfulnessHandler) SeedLibrary(c *fiber.Ctx) error {
	created, err := h.mindfulnessService.SeedMeditations()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to seed meditation library"))
	}

	return c.JSON(fiber.Map{"success": true, "created": created})
}

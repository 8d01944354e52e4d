package journal

import (
	"errors"

	"github.com/Krosebrook/lifesync-sub000/internal/ai"
	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/Krosebrook/lifesync-sub000/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type JournalHandler struct {
	journalService *JournalService
}

func NewJournalHandler(journalService *JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

func (h *JournalHandler) Create(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	var req CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	entry, err := h.journalService.Create(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidContent), errors.Is(err, ErrInvalidMood), errors.Is(err, ErrInvalidDate):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to create journal entry"))
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "entry": entry})
}

func (h *JournalHandler) List(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	entries, err := h.journalService.List(userID, c.QueryInt("limit", 30))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to list journal entries"))
	}

	return c.JSON(fiber.Map{"success": true, "entries": entries, "total": len(entries)})
}

func (h *JournalHandler) Get(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid entry id"))
	}

	entry, err := h.journalService.Get(userID, entryID)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to load journal entry"))
	}

	return c.JSON(fiber.Map{"success": true, "entry": entry})
}

func (h *JournalHandler) Update(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid entry id"))
	}

	var req UpdateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	entry, err := h.journalService.Update(userID, entryID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEntryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		case errors.Is(err, ErrInvalidContent), errors.Is(err, ErrInvalidMood):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to update journal entry"))
		}
	}

	return c.JSON(fiber.Map{"success": true, "entry": entry})
}

func (h *JournalHandler) Delete(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid entry id"))
	}

	if err := h.journalService.Delete(userID, entryID); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to delete journal entry"))
	}

	return c.JSON(fiber.Map{"success": true})
}

// AnalyzeEntries handles POST /journal/analyze - themes across recent entries.
// A user with no entries yet gets a soft failure, not a 4xx.
func (h *JournalHandler) AnalyzeEntries(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	// Body is optional; a missing or malformed body means default limit.
	var req AnalyzeEntriesRequest
	_ = c.BodyParser(&req)

	analysis, err := h.journalService.AnalyzeEntries(c.Context(), userID, req.Limit)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoEntries):
			return c.JSON(dto.Errorf("Write a few journal entries first, then try again"))
		case errors.Is(err, ai.ErrNotConfigured):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Errorf("AI analysis is not available"))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to analyze journal entries"))
		}
	}

	return c.JSON(fiber.Map{"success": true, "analysis": analysis})
}

// AnalyzeSentiment handles POST /journal/sentiment.
func (h *JournalHandler) AnalyzeSentiment(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	var req AnalyzeSentimentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	analysis, err := h.journalService.AnalyzeSentiment(c.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidContent):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
		case errors.Is(err, ErrEntryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		case errors.Is(err, ai.ErrNotConfigured):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Errorf("AI analysis is not available"))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to analyze sentiment"))
		}
	}

	return c.JSON(fiber.Map{"success": true, "analysis": analysis})
}

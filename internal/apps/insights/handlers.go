package insights

import (
	"errors"

	"github.com/Krosebrook/lifesync-sub000/internal/ai"
	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/Krosebrook/lifesync-sub000/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type InsightHandler struct {
	insightService *InsightService
}

func NewInsightHandler(insightService *InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// replyError maps the shared service error set onto the response envelope.
// "No data yet" is a soft failure on purpose; the client shows an empty
// state, not an error toast.
func replyError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrNoData):
		return c.JSON(dto.Errorf(err.Error()))
	case errors.Is(err, ErrInvalidPeriod), errors.Is(err, ErrInvalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
	case errors.Is(err, ai.ErrNotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Errorf("AI insights are not available"))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf(fallback))
	}
}

func (h *InsightHandler) GenerateMoodReport(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	var req MoodReportRequest
	_ = c.BodyParser(&req)

	result, err := h.insightService.GenerateMoodReport(c.Context(), userID, req.Period)
	if err != nil {
		return replyError(c, err, "Failed to generate mood report")
	}

	return c.JSON(fiber.Map{"success": true, "result": result})
}

func (h *InsightHandler) GenerateCoaching(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	result, err := h.insightService.GeneratePersonalizedCoaching(c.Context(), userID)
	if err != nil {
		return replyError(c, err, "Failed to generate coaching")
	}

	return c.JSON(fiber.Map{"success": true, "result": result})
}

// GeneratePremiumReport sits behind the premium middleware; free users never
// reach this handler.
func (h *InsightHandler) GeneratePremiumReport(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	var req PremiumReportRequest
	_ = c.BodyParser(&req)

	result, err := h.insightService.GeneratePremiumReport(c.Context(), userID, req.Period)
	if err != nil {
		return replyError(c, err, "Failed to generate premium report")
	}

	return c.JSON(fiber.Map{"success": true, "result": result})
}

func (h *InsightHandler) GenerateWeeklySummary(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	var req WeeklySummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	summary, err := h.insightService.GenerateWeeklySummary(c.Context(), userID, req)
	if err != nil {
		return replyError(c, err, "Failed to generate weekly summary")
	}

	return c.JSON(fiber.Map{"success": true, "summary": summary})
}

func (h *InsightHandler) ListWeeklySummaries(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	summaries, err := h.insightService.ListWeeklySummaries(userID, c.QueryInt("limit", 12))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to list weekly summaries"))
	}

	return c.JSON(fiber.Map{"success": true, "summaries": summaries, "total": len(summaries)})
}

func (h *InsightHandler) SuggestGoals(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	suggestions, err := h.insightService.SuggestGoals(c.Context(), userID)
	if err != nil {
		return replyError(c, err, "Failed to generate goal suggestions")
	}

	return c.JSON(fiber.Map{"success": true, "suggestions": suggestions})
}

func (h *InsightHandler) SuggestHabits(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	suggestions, err := h.insightService.SuggestHabits(c.Context(), userID)
	if err != nil {
		return replyError(c, err, "Failed to generate habit suggestions")
	}

	return c.JSON(fiber.Map{"success": true, "suggestions": suggestions})
}

func (h *InsightHandler) SuggestFromJournal(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	suggestions, err := h.insightService.SuggestFromJournal(c.Context(), userID)
	if err != nil {
		return replyError(c, err, "Failed to generate suggestions from journal")
	}

	return c.JSON(fiber.Map{"success": true, "suggestions": suggestions})
}

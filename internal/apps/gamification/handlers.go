package gamification

import (
	"errors"

	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/Krosebrook/lifesync-sub000/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type GamificationHandler struct {
	gamificationService *GamificationService
}

func NewGamificationHandler(gamificationService *GamificationService) *GamificationHandler {
	return &GamificationHandler{gamificationService: gamificationService}
}

func (h *GamificationHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	profile, err := h.gamificationService.GetProfile(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to load profile"))
	}

	return c.JSON(fiber.Map{"success": true, "profile": profile})
}

// AwardPoints handles POST /gamification/points. Unknown actions are rejected
// before any state changes.
func (h *GamificationHandler) AwardPoints(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	var req AwardPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	result, err := h.gamificationService.AwardPoints(c.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidAction) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid action"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to award points"))
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"pointsEarned": result.PointsEarned,
		"newTotal":     result.NewTotal,
		"level":        result.Level,
		"leveledUp":    result.LeveledUp,
		"newBadges":    result.NewBadges,
	})
}

// CheckBadges handles POST /gamification/badges/check.
func (h *GamificationHandler) CheckBadges(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	result, err := h.gamificationService.CheckBadgeProgress(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to check badge progress"))
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"newlyEarned": result.NewlyEarned,
		"totalEarned": result.TotalEarned,
	})
}

func (h *GamificationHandler) ListBadges(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	badges, err := h.gamificationService.ListBadges(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to list badges"))
	}

	return c.JSON(fiber.Map{"success": true, "badges": badges, "total": len(badges)})
}

func (h *GamificationHandler) ListAchievements(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	achievements, err := h.gamificationService.ListAchievements(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to list achievements"))
	}

	return c.JSON(fiber.Map{"success": true, "achievements": achievements, "total": len(achievements)})
}

// SeedBadges handles the admin badge-catalog seed. Safe to re-run.
func (h *GamificationHandler) SeedBadges(c *fiber.Ctx) error {
	created, err := h.gamificationService.SeedBadges()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to seed badges"))
	}

	return c.JSON(fiber.Map{"success": true, "created": created})
}

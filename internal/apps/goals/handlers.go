package goals

import (
	"errors"

	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/Krosebrook/lifesync-sub000/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GoalHandler struct {
	goalService *GoalService
}

func NewGoalHandler(goalService *GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) Create(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	var req CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	goal, err := h.goalService.Create(userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidTitle) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to create goal"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "goal": goal})
}

func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	goals, err := h.goalService.List(userID, c.Query("status"))
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to list goals"))
	}

	return c.JSON(fiber.Map{"success": true, "goals": goals, "total": len(goals)})
}

func (h *GoalHandler) Update(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid goal id"))
	}

	var req UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	goal, err := h.goalService.Update(userID, goalID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGoalNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidProgress):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to update goal"))
		}
	}

	return c.JSON(fiber.Map{"success": true, "goal": goal})
}

func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid goal id"))
	}

	if err := h.goalService.Delete(userID, goalID); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to delete goal"))
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *GoalHandler) Stats(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	stats, err := h.goalService.Stats(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to compute goal stats"))
	}

	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

package habits

import (
	"errors"

	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/Krosebrook/lifesync-sub000/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type HabitHandler struct {
	habitService *HabitService
}

func NewHabitHandler(habitService *HabitService) *HabitHandler {
	return &HabitHandler{habitService: habitService}
}

func (h *HabitHandler) Create(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	var req CreateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	habit, err := h.habitService.Create(userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidName) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to create habit"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "habit": habit})
}

func (h *HabitHandler) List(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	habits, err := h.habitService.List(userID, c.QueryBool("active_only", false))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to list habits"))
	}

	return c.JSON(fiber.Map{"success": true, "habits": habits, "total": len(habits)})
}

func (h *HabitHandler) Update(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	habitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid habit id"))
	}

	var req UpdateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	habit, err := h.habitService.Update(userID, habitID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrHabitNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		case errors.Is(err, ErrInvalidName):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
		case errors.Is(err, ErrVersionConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.Errorf(err.Error()))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to update habit"))
		}
	}

	return c.JSON(fiber.Map{"success": true, "habit": habit})
}

func (h *HabitHandler) Delete(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	habitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid habit id"))
	}

	if err := h.habitService.Delete(userID, habitID); err != nil {
		if errors.Is(err, ErrHabitNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to delete habit"))
	}

	return c.JSON(fiber.Map{"success": true})
}

// LogCompletion handles POST /habits/:id/logs - upserts the day's log row.
func (h *HabitHandler) LogCompletion(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	habitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid habit id"))
	}

	var req LogCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	habit, logRow, err := h.habitService.LogCompletion(userID, habitID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrHabitNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		case errors.Is(err, ErrInvalidDate):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
		case errors.Is(err, ErrVersionConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.Errorf(err.Error()))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to log habit completion"))
		}
	}

	return c.JSON(fiber.Map{"success": true, "habit": habit, "log": logRow})
}

func (h *HabitHandler) Stats(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	stats, err := h.habitService.Stats(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to compute habit stats"))
	}

	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

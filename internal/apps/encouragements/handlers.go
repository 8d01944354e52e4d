package encouragements

import (
	"errors"

	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/Krosebrook/lifesync-sub000/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EncouragementHandler struct {
	encouragementService *EncouragementService
}

func NewEncouragementHandler(encouragementService *EncouragementService) *EncouragementHandler {
	return &EncouragementHandler{encouragementService: encouragementService}
}

func (h *EncouragementHandler) Send(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	var req SendEncouragementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid request body"))
	}

	encouragement, err := h.encouragementService.Send(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidMessage), errors.Is(err, ErrMessageTooLong),
			errors.Is(err, ErrSelfEncouragement), errors.Is(err, ErrContentInappropriate):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf(err.Error()))
		case errors.Is(err, ErrRecipientNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to send encouragement"))
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "encouragement": encouragement})
}

func (h *EncouragementHandler) ListReceived(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	received, err := h.encouragementService.ListReceived(userID, c.QueryInt("limit", 30))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to list encouragements"))
	}

	return c.JSON(fiber.Map{"success": true, "encouragements": received, "total": len(received)})
}

func (h *EncouragementHandler) ListSent(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	sent, err := h.encouragementService.ListSent(userID, c.QueryInt("limit", 30))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to list encouragements"))
	}

	return c.JSON(fiber.Map{"success": true, "encouragements": sent, "total": len(sent)})
}

func (h *EncouragementHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := authz.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("Unauthorized"))
	}

	encouragementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("Invalid encouragement id"))
	}

	encouragement, err := h.encouragementService.MarkRead(userID, encouragementID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Errorf(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Errorf("Failed to mark encouragement read"))
	}

	return c.JSON(fiber.Map{"success": true, "encouragement": encouragement})
}

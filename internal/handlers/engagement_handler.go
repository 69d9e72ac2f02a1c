package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wastewatch/wastewatch-backend/internal/dto"
	"github.com/wastewatch/wastewatch-backend/internal/middleware"
	"github.com/wastewatch/wastewatch-backend/internal/services"
)

type EngagementHandler struct {
	service *services.EngagementService
}

func NewEngagementHandler(service *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{service: service}
}

// ToggleLike flips the caller's like on a report. One endpoint covers both
// directions so clients never track prior state.
func (h *EngagementHandler) ToggleLike(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return respond(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid report id")
	}

	liked, err := h.service.ToggleLike(reportID, userID)
	if err != nil {
		return serviceError(c, err)
	}

	count, err := h.service.LikeCount(reportID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(dto.ToggleLikeResponse{Liked: liked, LikeCount: count})
}

func (h *EngagementHandler) AddComment(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return respond(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid report id")
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	comment, err := h.service.AddComment(reportID, userID, req.Text)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *EngagementHandler) ListComments(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid report id")
	}

	comments, err := h.service.CommentsFor(reportID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

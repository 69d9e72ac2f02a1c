package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wastewatch/wastewatch-backend/internal/models"
	"github.com/wastewatch/wastewatch-backend/internal/services"
)

type ContentHandler struct {
	service *services.ContentService
}

func NewContentHandler(service *services.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

func (h *ContentHandler) News(c *fiber.Ctx) error {
	return h.get(c, models.ContentKindNews)
}

func (h *ContentHandler) Briefing(c *fiber.Ctx) error {
	return h.get(c, models.ContentKindBriefing)
}

func (h *ContentHandler) get(c *fiber.Ctx, kind string) error {
	feed, err := h.service.Get(c.UserContext(), c.Params("city"), kind)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(feed)
}

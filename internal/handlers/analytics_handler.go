package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wastewatch/wastewatch-backend/internal/services"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) CityStats(c *fiber.Ctx) error {
	stats, err := h.service.CityStats(c.Params("city"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}

func (h *AnalyticsHandler) Leaderboard(c *fiber.Ctx) error {
	topN := c.QueryInt("top", 10)

	board, err := h.service.Leaderboard(c.Params("city"), topN)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(board)
}

package handlers

import (
	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InsightHandler struct {
	insightService *service.InsightService
	logger         *zap.Logger
}

func NewInsightHandler(insightService *service.InsightService, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
		logger:         logger,
	}
}

// GetInsights godoc
// @Summary AI spending insights
// @Description Personalized advice derived from the last three months of transactions
// @Tags insights
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.InsightsResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/insights [get]
func (h *InsightHandler) GetInsights(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resp, err := h.insightService.GetInsights(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to generate insights", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate insights",
		})
	}

	// Insights are personal advice; keep them out of shared caches.
	c.Set("Cache-Control", "no-store")

	return c.JSON(resp)
}

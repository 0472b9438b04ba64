package handlers

import (
	"errors"

	"fintrack/internal/dto"
	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GoalHandler struct {
	goalService *service.GoalService
	logger      *zap.Logger
}

func NewGoalHandler(goalService *service.GoalService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		logger:      logger,
	}
}

// Create godoc
// @Summary Create a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Param request body dto.CreateGoalRequest true "Goal"
// @Security Bearer
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/goals [post]
func (h *GoalHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.goalService.Create(c.Context(), userID, &req)
	if err != nil {
		return h.mapError(c, err, "Failed to create goal")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary List savings goals
// @Description List goals with derived progress figures, nearest target date first
// @Tags goals
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.GoalResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resp, err := h.goalService.List(c.Context(), userID)
	if err != nil {
		return h.mapError(c, err, "Failed to list goals")
	}

	return c.JSON(resp)
}

// Update godoc
// @Summary Update a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param request body dto.UpdateGoalRequest true "Fields to update"
// @Security Bearer
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/goals/{id} [put]
func (h *GoalHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var req dto.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.goalService.Update(c.Context(), userID, id, &req)
	if err != nil {
		return h.mapError(c, err, "Failed to update goal")
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a savings goal
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	if err := h.goalService.Delete(c.Context(), userID, id); err != nil {
		return h.mapError(c, err, "Failed to delete goal")
	}

	return c.JSON(fiber.Map{"message": "Goal deleted"})
}

// Forecast godoc
// @Summary Goal achievement forecast
// @Description Estimate whether the goal can be reached by its target date at the current saving rate
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Security Bearer
// @Success 200 {object} dto.GoalForecastResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/goals/{id}/forecast [get]
func (h *GoalHandler) Forecast(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	resp, err := h.goalService.Forecast(c.Context(), userID, id)
	if err != nil {
		return h.mapError(c, err, "Failed to build forecast")
	}

	return c.JSON(resp)
}

func (h *GoalHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validation.Message,
		})
	case errors.Is(err, service.ErrGoalNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	default:
		h.logger.Error(fallback, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallback,
		})
	}
}

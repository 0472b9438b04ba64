package handlers

import (
	"errors"

	"fintrack/internal/dto"
	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// Set godoc
// @Summary Set a budget
// @Description Create or replace the budget for a category and month
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.BudgetRequest true "Budget"
// @Security Bearer
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Set(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.BudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.budgetService.Set(c.Context(), userID, &req)
	if err != nil {
		return h.mapError(c, err, "Failed to set budget")
	}

	return c.JSON(resp)
}

// List godoc
// @Summary List budgets for a month
// @Description List budgets with derived spending figures for the given month and year
// @Tags budgets
// @Produce json
// @Param month path int true "Month 1-12"
// @Param year path int true "Year"
// @Security Bearer
// @Success 200 {object} dto.BudgetListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/budgets/{month}/{year} [get]
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	month, err := c.ParamsInt("month")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid month",
		})
	}
	year, err := c.ParamsInt("year")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid year",
		})
	}

	resp, err := h.budgetService.ListMonth(c.Context(), userID, month, year)
	if err != nil {
		return h.mapError(c, err, "Failed to list budgets")
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid budget ID",
		})
	}

	if err := h.budgetService.Delete(c.Context(), userID, id); err != nil {
		return h.mapError(c, err, "Failed to delete budget")
	}

	return c.JSON(fiber.Map{"message": "Budget deleted"})
}

func (h *BudgetHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validation.Message,
		})
	case errors.Is(err, service.ErrBudgetNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Budget not found",
		})
	default:
		h.logger.Error(fallback, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallback,
		})
	}
}

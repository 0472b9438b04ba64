package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrBudgetNotFound = errors.New("budget not found")

// BudgetService stores the planned amount only; spent, remaining and
// percentage figures are derived from that month's expense transactions on
// every read.
type BudgetService struct {
	budgets BudgetStore
	txStore TransactionStore
	logger  *zap.Logger
}

func NewBudgetService(budgets BudgetStore, txStore TransactionStore, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		budgets: budgets,
		txStore: txStore,
		logger:  logger,
	}
}

// Set creates or replaces the budget for (category, month, year). Setting
// the same slot twice overwrites the amount rather than erroring.
func (s *BudgetService) Set(ctx context.Context, userID uuid.UUID, req *dto.BudgetRequest) (*dto.BudgetResponse, error) {
	if !models.ValidCategory(req.Category) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown category %q", req.Category)}
	}
	if req.Amount < 0 {
		return nil, &ValidationError{Message: "amount must not be negative"}
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, &ValidationError{Message: "month must be between 1 and 12"}
	}
	if req.Year < 2000 || req.Year > 2100 {
		return nil, &ValidationError{Message: "year is out of range"}
	}

	now := time.Now()
	budget := &models.Budget{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  req.Category,
		Amount:    req.Amount,
		Month:     req.Month,
		Year:      req.Year,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.budgets.Upsert(ctx, budget); err != nil {
		return nil, err
	}

	s.logger.Info("Budget set",
		zap.String("user_id", userID.String()),
		zap.String("category", req.Category),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	spent, err := s.spentFor(ctx, userID, req.Category, req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	resp := toBudgetResponse(budget, spent)
	return &resp, nil
}

// ListMonth returns all budgets for a month with per-category and overall
// spending figures.
func (s *BudgetService) ListMonth(ctx context.Context, userID uuid.UUID, month, year int) (*dto.BudgetListResponse, error) {
	now := time.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return nil, &ValidationError{Message: "month must be between 1 and 12"}
	}

	budgets, err := s.budgets.ListByMonth(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	start, end := monthBounds(month, year)
	categories, err := s.txStore.ExpensesByCategory(ctx, userID, &start, &end)
	if err != nil {
		return nil, err
	}

	spentByCategory := make(map[string]float64, len(categories))
	for _, c := range categories {
		spentByCategory[c.Category] = c.Total
	}

	responses := make([]dto.BudgetResponse, len(budgets))
	totals := dto.BudgetTotals{}
	for i, b := range budgets {
		spent := spentByCategory[b.Category]
		responses[i] = toBudgetResponse(b, spent)
		totals.Budget += b.Amount
		totals.Spent += spent
	}
	totals.Remaining = totals.Budget - totals.Spent
	totals.PercentageUsed = percentageUsed(totals.Spent, totals.Budget)

	return &dto.BudgetListResponse{
		Budgets: responses,
		Totals:  totals,
	}, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.budgets.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}

	s.logger.Info("Budget deleted",
		zap.String("user_id", userID.String()),
		zap.String("budget_id", id.String()),
	)
	return nil
}

func (s *BudgetService) spentFor(ctx context.Context, userID uuid.UUID, category string, month, year int) (float64, error) {
	start, end := monthBounds(month, year)
	categories, err := s.txStore.ExpensesByCategory(ctx, userID, &start, &end)
	if err != nil {
		return 0, err
	}
	for _, c := range categories {
		if c.Category == category {
			return c.Total, nil
		}
	}
	return 0, nil
}

func toBudgetResponse(b *models.Budget, spent float64) dto.BudgetResponse {
	return dto.BudgetResponse{
		ID:             b.ID.String(),
		Category:       b.Category,
		Amount:         b.Amount,
		Month:          b.Month,
		Year:           b.Year,
		Spent:          spent,
		Remaining:      b.Amount - spent,
		PercentageUsed: percentageUsed(spent, b.Amount),
	}
}

// percentageUsed is capped at 100 so overspent budgets render a full bar.
func percentageUsed(spent, budget float64) int {
	if budget <= 0 {
		return 0
	}
	pct := int(spent / budget * 100)
	if pct > 100 {
		pct = 100
	}
	return pct
}

func monthBounds(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeBudgetStore upserts by (category, month, year) like the real table.
type fakeBudgetStore struct {
	budgets []*models.Budget
}

func (f *fakeBudgetStore) Upsert(ctx context.Context, budget *models.Budget) error {
	for i, b := range f.budgets {
		if b.UserID == budget.UserID && b.Category == budget.Category &&
			b.Month == budget.Month && b.Year == budget.Year {
			f.budgets[i].Amount = budget.Amount
			f.budgets[i].UpdatedAt = budget.UpdatedAt
			return nil
		}
	}
	f.budgets = append(f.budgets, budget)
	return nil
}

func (f *fakeBudgetStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Budget, error) {
	for _, b := range f.budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, errors.New("no rows")
}

func (f *fakeBudgetStore) ListByMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]*models.Budget, error) {
	var out []*models.Budget
	for _, b := range f.budgets {
		if b.UserID == userID && b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBudgetStore) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	for i, b := range f.budgets {
		if b.ID == id && b.UserID == userID {
			f.budgets = append(f.budgets[:i], f.budgets[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// spendingStore returns fixed category totals for budget derivation.
type spendingStore struct {
	fakeTransactionStore
	totals []repository.CategoryTotal
}

func (s *spendingStore) ExpensesByCategory(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) ([]repository.CategoryTotal, error) {
	return s.totals, nil
}

func TestBudgetSetIsUpsert(t *testing.T) {
	store := &fakeBudgetStore{}
	svc := NewBudgetService(store, &spendingStore{}, zap.NewNop())
	userID := uuid.New()

	req := &dto.BudgetRequest{Category: models.CategoryFood, Amount: 500, Month: 3, Year: 2024}
	if _, err := svc.Set(context.Background(), userID, req); err != nil {
		t.Fatalf("Set: %v", err)
	}

	req.Amount = 800
	if _, err := svc.Set(context.Background(), userID, req); err != nil {
		t.Fatalf("second Set: %v", err)
	}

	if len(store.budgets) != 1 {
		t.Fatalf("stored %d budgets, want 1 (same slot overwrites)", len(store.budgets))
	}
	if store.budgets[0].Amount != 800 {
		t.Errorf("amount = %v, want 800", store.budgets[0].Amount)
	}
}

func TestBudgetSetValidation(t *testing.T) {
	svc := NewBudgetService(&fakeBudgetStore{}, &spendingStore{}, zap.NewNop())

	cases := map[string]*dto.BudgetRequest{
		"unknown category": {Category: "Bribes", Amount: 100, Month: 1, Year: 2024},
		"negative amount":  {Category: models.CategoryFood, Amount: -5, Month: 1, Year: 2024},
		"bad month":        {Category: models.CategoryFood, Amount: 100, Month: 13, Year: 2024},
		"bad year":         {Category: models.CategoryFood, Amount: 100, Month: 1, Year: 1},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Set(context.Background(), uuid.New(), req)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestBudgetListMonthDerivesSpending(t *testing.T) {
	userID := uuid.New()
	store := &fakeBudgetStore{budgets: []*models.Budget{
		{ID: uuid.New(), UserID: userID, Category: models.CategoryFood, Amount: 1000, Month: 3, Year: 2024},
		{ID: uuid.New(), UserID: userID, Category: models.CategoryRent, Amount: 15000, Month: 3, Year: 2024},
	}}
	txStore := &spendingStore{totals: []repository.CategoryTotal{
		{Category: models.CategoryFood, Total: 1200, Count: 8},
		{Category: models.CategoryRent, Total: 7500, Count: 1},
	}}
	svc := NewBudgetService(store, txStore, zap.NewNop())

	resp, err := svc.ListMonth(context.Background(), userID, 3, 2024)
	if err != nil {
		t.Fatalf("ListMonth: %v", err)
	}

	if len(resp.Budgets) != 2 {
		t.Fatalf("got %d budgets, want 2", len(resp.Budgets))
	}

	food := resp.Budgets[0]
	if food.Spent != 1200 {
		t.Errorf("food spent = %v, want 1200", food.Spent)
	}
	if food.Remaining != -200 {
		t.Errorf("food remaining = %v, want -200", food.Remaining)
	}
	if food.PercentageUsed != 100 {
		t.Errorf("overspent percentage = %d, want capped at 100", food.PercentageUsed)
	}

	rent := resp.Budgets[1]
	if rent.PercentageUsed != 50 {
		t.Errorf("rent percentage = %d, want 50", rent.PercentageUsed)
	}

	if resp.Totals.Budget != 16000 || resp.Totals.Spent != 8700 {
		t.Errorf("totals = %+v, want budget 16000 spent 8700", resp.Totals)
	}
}

func TestBudgetDeleteNotFound(t *testing.T) {
	svc := NewBudgetService(&fakeBudgetStore{}, &spendingStore{}, zap.NewNop())

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrBudgetNotFound) {
		t.Errorf("err = %v, want ErrBudgetNotFound", err)
	}
}

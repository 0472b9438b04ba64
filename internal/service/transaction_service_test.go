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

type aggregateStore struct {
	fakeTransactionStore
	typeTotals    []repository.TypeTotal
	monthlyTotals []repository.MonthlyTotal
}

func (s *aggregateStore) SummaryByType(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) ([]repository.TypeTotal, error) {
	return s.typeTotals, nil
}

func (s *aggregateStore) MonthlyTrends(ctx context.Context, userID uuid.UUID, year int) ([]repository.MonthlyTotal, error) {
	return s.monthlyTotals, nil
}

func TestTransactionCreate(t *testing.T) {
	store := &fakeTransactionStore{}
	svc := NewTransactionService(store, zap.NewNop())
	userID := uuid.New()

	resp, err := svc.Create(context.Background(), userID, &dto.CreateTransactionRequest{
		Type:        "expense",
		Amount:      250.75,
		Category:    models.CategoryFood,
		Description: "Lunch",
		Date:        "2024-05-10",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if resp.Amount != 250.75 {
		t.Errorf("amount = %v, want 250.75", resp.Amount)
	}
	if resp.ExtractedFromReceipt {
		t.Error("manually created transactions are not extraction-derived")
	}
	if len(store.created) != 1 {
		t.Fatalf("stored %d, want 1", len(store.created))
	}
	if store.created[0].UserID != userID {
		t.Error("transaction must belong to the caller")
	}
}

func TestTransactionCreateValidation(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionStore{}, zap.NewNop())

	cases := map[string]*dto.CreateTransactionRequest{
		"bad type":         {Type: "transfer", Amount: 10, Category: models.CategoryFood, Description: "x", Date: "2024-01-01"},
		"zero amount":      {Type: "expense", Amount: 0, Category: models.CategoryFood, Description: "x", Date: "2024-01-01"},
		"unknown category": {Type: "expense", Amount: 10, Category: "Magic", Description: "x", Date: "2024-01-01"},
		"no description":   {Type: "expense", Amount: 10, Category: models.CategoryFood, Description: "", Date: "2024-01-01"},
		"bad date":         {Type: "expense", Amount: 10, Category: models.CategoryFood, Description: "x", Date: "last tuesday"},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), req)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestTransactionGetNotFound(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionStore{}, zap.NewNop())

	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected an error for a missing transaction")
	}
}

func TestTransactionDeleteNotFound(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionStore{}, zap.NewNop())

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("err = %v, want ErrTransactionNotFound", err)
	}
}

func TestTransactionSummary(t *testing.T) {
	store := &aggregateStore{typeTotals: []repository.TypeTotal{
		{Type: models.TypeIncome, Total: 60000, Count: 2},
		{Type: models.TypeExpense, Total: 22500, Count: 14},
	}}
	svc := NewTransactionService(store, zap.NewNop())

	resp, err := svc.Summary(context.Background(), uuid.New(), "", "")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if resp.TotalIncome != 60000 || resp.IncomeCount != 2 {
		t.Errorf("income = %v/%d, want 60000/2", resp.TotalIncome, resp.IncomeCount)
	}
	if resp.TotalExpenses != 22500 || resp.ExpenseCount != 14 {
		t.Errorf("expenses = %v/%d, want 22500/14", resp.TotalExpenses, resp.ExpenseCount)
	}
	if resp.Balance != 37500 {
		t.Errorf("balance = %v, want 37500", resp.Balance)
	}
}

func TestTransactionSummaryBadDates(t *testing.T) {
	svc := NewTransactionService(&aggregateStore{}, zap.NewNop())

	_, err := svc.Summary(context.Background(), uuid.New(), "03/01/2024", "")
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestTransactionChartDataFillsAllMonths(t *testing.T) {
	store := &aggregateStore{monthlyTotals: []repository.MonthlyTotal{
		{Month: 1, Type: models.TypeIncome, Total: 50000},
		{Month: 1, Type: models.TypeExpense, Total: 20000},
		{Month: 7, Type: models.TypeExpense, Total: 31000},
	}}
	svc := NewTransactionService(store, zap.NewNop())

	resp, err := svc.ChartData(context.Background(), uuid.New(), 2024)
	if err != nil {
		t.Fatalf("ChartData: %v", err)
	}

	if len(resp.MonthlyTrends) != 12 {
		t.Fatalf("got %d months, want all 12", len(resp.MonthlyTrends))
	}
	if resp.MonthlyTrends[0].Income != 50000 || resp.MonthlyTrends[0].Expenses != 20000 {
		t.Errorf("january = %+v", resp.MonthlyTrends[0])
	}
	if resp.MonthlyTrends[6].Expenses != 31000 {
		t.Errorf("july expenses = %v, want 31000", resp.MonthlyTrends[6].Expenses)
	}
	if resp.MonthlyTrends[3].Income != 0 {
		t.Errorf("empty month should be zero, got %v", resp.MonthlyTrends[3].Income)
	}
	if resp.Year != 2024 {
		t.Errorf("year = %d, want 2024", resp.Year)
	}
}

func TestTransactionCategories(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionStore{}, zap.NewNop())

	resp := svc.Categories()
	if len(resp.Expense) != len(models.ExpenseCategories) {
		t.Errorf("expense categories = %d, want %d", len(resp.Expense), len(models.ExpenseCategories))
	}
	if len(resp.Income) != len(models.IncomeCategories) {
		t.Errorf("income categories = %d, want %d", len(resp.Income), len(models.IncomeCategories))
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func insightTestStore(userID uuid.UUID) *fakeTransactionStore {
	now := time.Now()
	return &fakeTransactionStore{created: []*models.Transaction{
		{ID: uuid.New(), UserID: userID, Type: models.TypeIncome, Amount: 50000, Category: models.CategorySalary, Date: now.AddDate(0, -1, 0)},
		{ID: uuid.New(), UserID: userID, Type: models.TypeExpense, Amount: 12000, Category: models.CategoryRent, Date: now.AddDate(0, -1, 0)},
		{ID: uuid.New(), UserID: userID, Type: models.TypeExpense, Amount: 4000, Category: models.CategoryFood, Date: now.AddDate(0, 0, -10)},
	}}
}

func TestGetInsights(t *testing.T) {
	userID := uuid.New()
	gen := &fakeGenerator{
		response: `Here you go: ["Cut food delivery spending", "Automate savings on payday", "Review your rent-to-income ratio"]`,
	}
	svc := NewInsightService(insightTestStore(userID), gen, zap.NewNop())

	resp, err := svc.GetInsights(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}

	if len(resp.Insights) != 3 {
		t.Fatalf("got %d insights, want 3", len(resp.Insights))
	}
	if resp.AnalysisPeriod == nil {
		t.Fatal("analysis period missing")
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "INR") {
		t.Error("prompt should state the currency")
	}
	if !strings.Contains(prompt, models.CategoryRent) {
		t.Error("prompt should include the category rollup")
	}
}

func TestGetInsightsGeneratorFailure(t *testing.T) {
	userID := uuid.New()
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := NewInsightService(insightTestStore(userID), gen, zap.NewNop())

	resp, err := svc.GetInsights(context.Background(), userID)
	if err != nil {
		t.Fatalf("generator failure must not surface: %v", err)
	}
	if len(resp.Insights) == 0 {
		t.Error("fallback advice expected")
	}
}

func TestGetInsightsUnparseableResponse(t *testing.T) {
	userID := uuid.New()
	gen := &fakeGenerator{response: "Spend less, save more."}
	svc := NewInsightService(insightTestStore(userID), gen, zap.NewNop())

	resp, err := svc.GetInsights(context.Background(), userID)
	if err != nil {
		t.Fatalf("unparseable response must not surface: %v", err)
	}
	if len(resp.Insights) != len(fallbackInsights) {
		t.Errorf("got %d insights, want the fallback set", len(resp.Insights))
	}
}

func TestGetInsightsNoTransactions(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewInsightService(&fakeTransactionStore{}, gen, zap.NewNop())

	resp, err := svc.GetInsights(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}
	if len(resp.Insights) == 0 {
		t.Error("empty history should still produce advice")
	}
	if len(gen.prompts) != 0 {
		t.Errorf("generator called %d times with no data, want 0", len(gen.prompts))
	}
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fallbackInsights is returned whenever the model cannot produce usable
// advice, so the endpoint always has something to show.
var fallbackInsights = []string{
	"Track your spending regularly to identify patterns and opportunities to save.",
	"Consider setting monthly budgets for your top spending categories.",
	"Building an emergency fund covering 3-6 months of expenses is a strong financial foundation.",
}

// InsightService turns recent transaction history into a handful of
// personalized advice strings via the text model. Failures never surface to
// the caller; generic advice is returned instead.
type InsightService struct {
	txStore   TransactionStore
	generator TextGenerator
	logger    *zap.Logger
}

func NewInsightService(txStore TransactionStore, generator TextGenerator, logger *zap.Logger) *InsightService {
	return &InsightService{
		txStore:   txStore,
		generator: generator,
		logger:    logger,
	}
}

// GetInsights analyzes the last three months of transactions. The result is
// advisory text, so any failure downgrades to generic advice rather than an
// error response.
func (s *InsightService) GetInsights(ctx context.Context, userID uuid.UUID) (*dto.InsightsResponse, error) {
	end := time.Now()
	start := end.AddDate(0, -3, 0)

	transactions, err := s.txStore.List(ctx, userID, repository.TransactionFilter{
		StartDate: &start,
		EndDate:   &end,
		SortBy:    "date",
		SortOrder: "desc",
		Limit:     100,
	})
	if err != nil {
		return nil, err
	}

	period := &dto.AnalysisPeriod{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
	}

	if len(transactions) == 0 {
		return &dto.InsightsResponse{
			Insights: []string{
				"Start adding your income and expenses to get personalized insights.",
			},
			AnalysisPeriod: period,
		}, nil
	}

	prompt := buildInsightPrompt(transactions)

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn("Insight generation failed, using fallback", zap.Error(err))
		return &dto.InsightsResponse{Insights: fallbackInsights, AnalysisPeriod: period}, nil
	}

	insights := parseInsights(raw)
	if len(insights) == 0 {
		s.logger.Warn("Insight response unparseable, using fallback",
			zap.Int("raw_length", len(raw)),
		)
		insights = fallbackInsights
	}

	return &dto.InsightsResponse{
		Insights:       insights,
		AnalysisPeriod: period,
	}, nil
}

// buildInsightPrompt summarizes spending per category plus overall totals.
// Only the rollup goes to the model, never raw descriptions beyond the top
// categories.
func buildInsightPrompt(transactions []*models.Transaction) string {
	var totalIncome, totalExpenses float64
	expenseByCategory := make(map[string]float64)

	for _, tx := range transactions {
		switch tx.Type {
		case models.TypeIncome:
			totalIncome += tx.Amount
		case models.TypeExpense:
			totalExpenses += tx.Amount
			expenseByCategory[tx.Category] += tx.Amount
		}
	}

	type categorySum struct {
		name  string
		total float64
	}
	categories := make([]categorySum, 0, len(expenseByCategory))
	for name, total := range expenseByCategory {
		categories = append(categories, categorySum{name, total})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].total > categories[j].total
	})

	var b strings.Builder
	b.WriteString("You are a personal finance advisor. Analyze this spending summary for the last 3 months (all amounts in INR):\n\n")
	fmt.Fprintf(&b, "Total income: %.2f\nTotal expenses: %.2f\n\nExpenses by category:\n", totalIncome, totalExpenses)
	for _, c := range categories {
		fmt.Fprintf(&b, "- %s: %.2f\n", c.name, c.total)
	}
	b.WriteString(`
Provide 3-5 short, specific, actionable financial insights for this person.
Return ONLY a JSON array of strings:
["insight one", "insight two", "insight three"]`)

	return b.String()
}

// parseInsights pulls the string array out of the model response; anything
// unusable yields nil so the caller falls back to generic advice.
func parseInsights(raw string) []string {
	payload, err := extractJSON(raw, shapeArray)
	if err != nil {
		return nil
	}

	var insights []string
	for _, element := range payload.([]interface{}) {
		text, ok := element.(string)
		if !ok {
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			insights = append(insights, sanitizeUTF8(text))
		}
	}
	return insights
}

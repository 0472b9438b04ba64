package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type TransactionService struct {
	store  TransactionStore
	logger *zap.Logger
}

func NewTransactionService(store TransactionStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

// ListFilter carries the query parameters for listing transactions.
type ListFilter struct {
	Type      string
	Category  string
	StartDate string
	EndDate   string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if err := validateTransactionInput(req.Type, req.Amount, req.Category, req.Description); err != nil {
		return nil, err
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        models.TransactionType(req.Type),
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction created",
		zap.String("user_id", userID.String()),
		zap.String("transaction_id", tx.ID.String()),
	)

	resp := toTransactionResponse(tx)
	return &resp, nil
}

func (s *TransactionService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.TransactionResponse, error) {
	tx, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	resp := toTransactionResponse(tx)
	return &resp, nil
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, filter ListFilter) (*dto.TransactionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}

	repoFilter := repository.TransactionFilter{
		Type:      models.TransactionType(filter.Type),
		Category:  filter.Category,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
		Limit:     filter.Limit,
		Offset:    (filter.Page - 1) * filter.Limit,
	}

	if filter.StartDate != "" {
		start, err := time.Parse("2006-01-02", filter.StartDate)
		if err != nil {
			return nil, &ValidationError{Message: "invalid start_date, expected YYYY-MM-DD"}
		}
		repoFilter.StartDate = &start
	}
	if filter.EndDate != "" {
		end, err := time.Parse("2006-01-02", filter.EndDate)
		if err != nil {
			return nil, &ValidationError{Message: "invalid end_date, expected YYYY-MM-DD"}
		}
		repoFilter.EndDate = &end
	}

	transactions, err := s.store.List(ctx, userID, repoFilter)
	if err != nil {
		return nil, err
	}

	countFilter := repoFilter
	countFilter.Limit = 0
	countFilter.Offset = 0
	total, err := s.store.Count(ctx, userID, countFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = toTransactionResponse(tx)
	}

	return &dto.TransactionListResponse{
		Transactions: responses,
		Pagination:   buildPagination(filter.Page, filter.Limit, total),
	}, nil
}

// Update applies the non-empty fields of req to the stored transaction.
func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if req.Type != "" {
		if req.Type != string(models.TypeIncome) && req.Type != string(models.TypeExpense) {
			return nil, &ValidationError{Message: "type must be income or expense"}
		}
		tx.Type = models.TransactionType(req.Type)
	}
	if req.Amount != 0 {
		if req.Amount < 0 {
			return nil, &ValidationError{Message: "amount must be greater than zero"}
		}
		tx.Amount = req.Amount
	}
	if req.Category != "" {
		if !models.ValidCategory(req.Category) {
			return nil, &ValidationError{Message: fmt.Sprintf("unknown category %q", req.Category)}
		}
		tx.Category = req.Category
	}
	if req.Description != "" {
		if len(req.Description) > maxDescriptionLen {
			return nil, &ValidationError{Message: "description exceeds 200 characters"}
		}
		tx.Description = req.Description
	}
	if req.Date != "" {
		date, err := parseTransactionDate(req.Date)
		if err != nil {
			return nil, err
		}
		tx.Date = date
	}

	tx.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, tx); err != nil {
		return nil, err
	}

	resp := toTransactionResponse(tx)
	return &resp, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.store.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}

	s.logger.Info("Transaction deleted",
		zap.String("user_id", userID.String()),
		zap.String("transaction_id", id.String()),
	)
	return nil
}

// Summary aggregates income and expense totals for an optional date range.
func (s *TransactionService) Summary(ctx context.Context, userID uuid.UUID, startDate, endDate string) (*dto.SummaryResponse, error) {
	var start, end *time.Time
	if startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, &ValidationError{Message: "invalid start_date, expected YYYY-MM-DD"}
		}
		start = &t
	}
	if endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, &ValidationError{Message: "invalid end_date, expected YYYY-MM-DD"}
		}
		end = &t
	}

	totals, err := s.store.SummaryByType(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	summary := &dto.SummaryResponse{}
	for _, t := range totals {
		switch t.Type {
		case models.TypeIncome:
			summary.TotalIncome = t.Total
			summary.IncomeCount = t.Count
		case models.TypeExpense:
			summary.TotalExpenses = t.Total
			summary.ExpenseCount = t.Count
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpenses

	return summary, nil
}

// ChartData returns the expenses-by-category breakdown and the monthly
// income/expense trend for one year.
func (s *TransactionService) ChartData(ctx context.Context, userID uuid.UUID, year int) (*dto.ChartDataResponse, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	categories, err := s.store.ExpensesByCategory(ctx, userID, &yearStart, &yearEnd)
	if err != nil {
		return nil, err
	}

	trends, err := s.store.MonthlyTrends(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	byCategory := make([]dto.CategoryTotalResponse, len(categories))
	for i, c := range categories {
		byCategory[i] = dto.CategoryTotalResponse{
			Category: c.Category,
			Total:    c.Total,
			Count:    c.Count,
		}
	}

	monthly := make([]dto.MonthlyTrendResponse, 12)
	for i := range monthly {
		monthly[i].Month = i + 1
	}
	for _, t := range trends {
		if t.Month < 1 || t.Month > 12 {
			continue
		}
		switch t.Type {
		case models.TypeIncome:
			monthly[t.Month-1].Income = t.Total
		case models.TypeExpense:
			monthly[t.Month-1].Expenses = t.Total
		}
	}

	return &dto.ChartDataResponse{
		ExpensesByCategory: byCategory,
		MonthlyTrends:      monthly,
		Year:               year,
	}, nil
}

// Categories returns the closed category enumeration the UI offers.
func (s *TransactionService) Categories() *dto.CategoriesResponse {
	return &dto.CategoriesResponse{
		Expense: models.ExpenseCategories,
		Income:  models.IncomeCategories,
	}
}

func validateTransactionInput(txType string, amount float64, category, description string) error {
	if txType != string(models.TypeIncome) && txType != string(models.TypeExpense) {
		return &ValidationError{Message: "type must be income or expense"}
	}
	if amount <= 0 {
		return &ValidationError{Message: "amount must be greater than zero"}
	}
	if !models.ValidCategory(category) {
		return &ValidationError{Message: fmt.Sprintf("unknown category %q", category)}
	}
	if description == "" {
		return &ValidationError{Message: "description is required"}
	}
	if len(description) > maxDescriptionLen {
		return &ValidationError{Message: "description exceeds 200 characters"}
	}
	return nil
}

// parseTransactionDate rejects future dates: manual entry records what
// already happened.
func parseTransactionDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, value); err != nil {
			return time.Time{}, &ValidationError{Message: "invalid date, expected YYYY-MM-DD"}
		}
	}
	if date.After(time.Now()) {
		return time.Time{}, &ValidationError{Message: "date must not be in the future"}
	}
	return date, nil
}

package repository

import (
	"context"
	"time"

	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const transactionColumns = "id, user_id, type, amount, category, description, date, extracted_from_receipt, created_at, updated_at"

// TransactionFilter narrows List and Count queries. Zero values mean
// "no constraint".
type TransactionFilter struct {
	Type          models.TransactionType
	Category      string
	StartDate     *time.Time
	EndDate       *time.Time
	ExtractedOnly bool
	SortBy        string
	SortOrder     string
	Limit         int
	Offset        int
}

// CategoryTotal is one row of an expenses-by-category aggregation.
type CategoryTotal struct {
	Category string
	Total    float64
	Count    int
}

// TypeTotal is one row of a per-type aggregation (income vs. expense).
type TypeTotal struct {
	Type  models.TransactionType
	Total float64
	Count int
}

// MonthlyTotal is one row of a month/type trend aggregation.
type MonthlyTotal struct {
	Month int
	Type  models.TransactionType
	Total float64
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns("id", "user_id", "type", "amount", "category", "description", "date", "extracted_from_receipt", "created_at", "updated_at").
		Values(tx.ID, tx.UserID, tx.Type, tx.Amount, tx.Category, tx.Description, tx.Date, tx.ExtractedFromReceipt, tx.CreatedAt, tx.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// CreateBatch inserts all transactions in a single statement.
func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []*models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	builder := squirrel.Insert("transactions").
		Columns("id", "user_id", "type", "amount", "category", "description", "date", "extracted_from_receipt", "created_at", "updated_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, tx := range transactions {
		builder = builder.Values(tx.ID, tx.UserID, tx.Type, tx.Amount, tx.Category, tx.Description, tx.Date, tx.ExtractedFromReceipt, tx.CreatedAt, tx.UpdatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns).
		From("transactions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var tx models.Transaction
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Category, &tx.Description,
		&tx.Date, &tx.ExtractedFromReceipt, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

func (r *TransactionRepository) List(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	query = applyFilter(query, filter)

	sortBy := filter.SortBy
	switch sortBy {
	case "date", "amount", "category", "created_at":
	default:
		sortBy = "date"
	}
	order := "DESC"
	if filter.SortOrder == "asc" {
		order = "ASC"
	}
	query = query.OrderBy(sortBy + " " + order)

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Category, &tx.Description,
			&tx.Date, &tx.ExtractedFromReceipt, &tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}

func (r *TransactionRepository) Count(ctx context.Context, userID uuid.UUID, filter TransactionFilter) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	query = applyFilter(query, filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Update("transactions").
		Set("type", tx.Type).
		Set("amount", tx.Amount).
		Set("category", tx.Category).
		Set("description", tx.Description).
		Set("date", tx.Date).
		Set("updated_at", tx.UpdatedAt).
		Where(squirrel.Eq{"id": tx.ID, "user_id": tx.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Delete removes a transaction and reports whether a row was deleted.
func (r *TransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// SummaryByType sums amounts per transaction type in the optional date range.
func (r *TransactionRepository) SummaryByType(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) ([]TypeTotal, error) {
	query := squirrel.Select("type", "COALESCE(SUM(amount), 0)", "COUNT(*)").
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		GroupBy("type").
		PlaceholderFormat(squirrel.Dollar)

	if startDate != nil {
		query = query.Where(squirrel.GtOrEq{"date": *startDate})
	}
	if endDate != nil {
		query = query.Where(squirrel.LtOrEq{"date": *endDate})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []TypeTotal
	for rows.Next() {
		var t TypeTotal
		if err := rows.Scan(&t.Type, &t.Total, &t.Count); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

// ExpensesByCategory sums expense amounts per category in the optional
// date range, largest first.
func (r *TransactionRepository) ExpensesByCategory(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) ([]CategoryTotal, error) {
	query := squirrel.Select("category", "COALESCE(SUM(amount), 0)", "COUNT(*)").
		From("transactions").
		Where(squirrel.Eq{"user_id": userID, "type": models.TypeExpense}).
		GroupBy("category").
		OrderBy("SUM(amount) DESC").
		PlaceholderFormat(squirrel.Dollar)

	if startDate != nil {
		query = query.Where(squirrel.GtOrEq{"date": *startDate})
	}
	if endDate != nil {
		query = query.Where(squirrel.LtOrEq{"date": *endDate})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var t CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total, &t.Count); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

// MonthlyTrends sums amounts per (month, type) for one calendar year.
func (r *TransactionRepository) MonthlyTrends(ctx context.Context, userID uuid.UUID, year int) ([]MonthlyTotal, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	query := squirrel.Select("EXTRACT(MONTH FROM date)::int AS month", "type", "COALESCE(SUM(amount), 0)").
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.Lt{"date": end}).
		GroupBy("month", "type").
		OrderBy("month ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []MonthlyTotal
	for rows.Next() {
		var t MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Type, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

func applyFilter(query squirrel.SelectBuilder, filter TransactionFilter) squirrel.SelectBuilder {
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.StartDate != nil {
		query = query.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		query = query.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}
	if filter.ExtractedOnly {
		query = query.Where(squirrel.Eq{"extracted_from_receipt": true})
	}
	return query
}

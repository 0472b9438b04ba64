package repository

import (
	"context"

	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const goalColumns = "id, user_id, name, target_amount, current_amount, target_date, category, created_at, updated_at"

type GoalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGoalRepository(db *pgxpool.Pool, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	query := squirrel.Insert("goals").
		Columns("id", "user_id", "name", "target_amount", "current_amount", "target_date", "category", "created_at", "updated_at").
		Values(goal.ID, goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, goal.Category, goal.CreatedAt, goal.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Goal, error) {
	query := squirrel.Select(goalColumns).
		From("goals").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var g models.Goal
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
		&g.TargetDate, &g.Category, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// ListByUser returns the user's goals ordered by nearest target date.
func (r *GoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Goal, error) {
	query := squirrel.Select(goalColumns).
		From("goals").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("target_date ASC").
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

	var goals []*models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&g.TargetDate, &g.Category, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, &g)
	}

	return goals, rows.Err()
}

func (r *GoalRepository) Update(ctx context.Context, goal *models.Goal) error {
	query := squirrel.Update("goals").
		Set("name", goal.Name).
		Set("target_amount", goal.TargetAmount).
		Set("current_amount", goal.CurrentAmount).
		Set("target_date", goal.TargetDate).
		Set("category", goal.Category).
		Set("updated_at", goal.UpdatedAt).
		Where(squirrel.Eq{"id": goal.ID, "user_id": goal.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := squirrel.Delete("goals").
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

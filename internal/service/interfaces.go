package service

import (
	"context"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
)

// TransactionStore is the persistence surface the services need from the
// transaction repository.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	CreateBatch(ctx context.Context, transactions []*models.Transaction) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]*models.Transaction, error)
	Count(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) (int, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
	SummaryByType(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) ([]repository.TypeTotal, error)
	ExpensesByCategory(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) ([]repository.CategoryTotal, error)
	MonthlyTrends(ctx context.Context, userID uuid.UUID, year int) ([]repository.MonthlyTotal, error)
}

// BudgetStore is the persistence surface for budgets.
type BudgetStore interface {
	Upsert(ctx context.Context, budget *models.Budget) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Budget, error)
	ListByMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]*models.Budget, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// GoalStore is the persistence surface for savings goals.
type GoalStore interface {
	Create(ctx context.Context, goal *models.Goal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Goal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Goal, error)
	Update(ctx context.Context, goal *models.Goal) error
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// UserStore is the persistence surface for users.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

package main

import (
	"context"
	"log"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repository"
	"fintrack/pkg/auth"
	"fintrack/pkg/config"
	"fintrack/pkg/logger"
	"fintrack/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeds a demo user with a few months of transactions, budgets and goals
// so the API has data to show right after a fresh migration.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	now := time.Now()

	if _, err := userRepo.GetByEmail(ctx, "demo@fintrack.local"); err == nil {
		appLogger.Info("Demo user already exists, nothing to do")
		return
	}

	hashed, err := auth.HashPassword("demo123")
	if err != nil {
		appLogger.Fatal("Failed to hash demo password", zap.Error(err))
	}

	user := &models.User{
		ID:        uuid.New(),
		Username:  "demo",
		Email:     "demo@fintrack.local",
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}
	appLogger.Info("Created demo user", zap.String("email", user.Email))

	transactions := demoTransactions(user.ID, now)
	if err := txRepo.CreateBatch(ctx, transactions); err != nil {
		appLogger.Fatal("Failed to seed transactions", zap.Error(err))
	}
	appLogger.Info("Seeded transactions", zap.Int("count", len(transactions)))

	for _, b := range demoBudgets(user.ID, now) {
		if err := budgetRepo.Upsert(ctx, b); err != nil {
			appLogger.Fatal("Failed to seed budget", zap.Error(err))
		}
	}
	appLogger.Info("Seeded budgets")

	for _, g := range demoGoals(user.ID, now) {
		if err := goalRepo.Create(ctx, g); err != nil {
			appLogger.Fatal("Failed to seed goal", zap.Error(err))
		}
	}
	appLogger.Info("Seeded goals")

	appLogger.Info("Database seeding completed successfully!")
}

func demoTransactions(userID uuid.UUID, now time.Time) []*models.Transaction {
	type row struct {
		txType      models.TransactionType
		amount      float64
		category    string
		description string
		daysAgo     int
	}

	rows := []row{
		{models.TypeIncome, 75000, models.CategorySalary, "Monthly salary", 65},
		{models.TypeIncome, 75000, models.CategorySalary, "Monthly salary", 34},
		{models.TypeIncome, 75000, models.CategorySalary, "Monthly salary", 4},
		{models.TypeIncome, 12000, models.CategoryFreelance, "Logo design project", 20},
		{models.TypeExpense, 18000, models.CategoryRent, "Apartment rent", 62},
		{models.TypeExpense, 18000, models.CategoryRent, "Apartment rent", 32},
		{models.TypeExpense, 18000, models.CategoryRent, "Apartment rent", 2},
		{models.TypeExpense, 3200, models.CategoryFoodDining, "Weekly groceries", 28},
		{models.TypeExpense, 2800, models.CategoryFoodDining, "Weekly groceries", 21},
		{models.TypeExpense, 640, models.CategoryFood, "Lunch with colleagues", 15},
		{models.TypeExpense, 1450, models.CategoryTransport, "Fuel", 18},
		{models.TypeExpense, 499, models.CategoryEntertainment, "Streaming subscription", 10},
		{models.TypeExpense, 5600, models.CategoryShopping, "Running shoes", 12},
		{models.TypeExpense, 1200, models.CategoryHealthcare, "Pharmacy", 9},
		{models.TypeExpense, 2100, models.CategoryUtilities, "Electricity bill", 7},
		{models.TypeExpense, 899, models.CategoryUtilities, "Internet bill", 6},
	}

	transactions := make([]*models.Transaction, len(rows))
	for i, r := range rows {
		transactions[i] = &models.Transaction{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        r.txType,
			Amount:      r.amount,
			Category:    r.category,
			Description: r.description,
			Date:        now.AddDate(0, 0, -r.daysAgo),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}
	return transactions
}

func demoBudgets(userID uuid.UUID, now time.Time) []*models.Budget {
	month := int(now.Month())
	year := now.Year()

	amounts := map[string]float64{
		models.CategoryFoodDining:    8000,
		models.CategoryRent:          18000,
		models.CategoryTransport:     3000,
		models.CategoryEntertainment: 2000,
		models.CategoryUtilities:     3500,
	}

	budgets := make([]*models.Budget, 0, len(amounts))
	for category, amount := range amounts {
		budgets = append(budgets, &models.Budget{
			ID:        uuid.New(),
			UserID:    userID,
			Category:  category,
			Amount:    amount,
			Month:     month,
			Year:      year,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return budgets
}

func demoGoals(userID uuid.UUID, now time.Time) []*models.Goal {
	return []*models.Goal{
		{
			ID:            uuid.New(),
			UserID:        userID,
			Name:          "Emergency fund",
			TargetAmount:  300000,
			CurrentAmount: 85000,
			TargetDate:    now.AddDate(1, 0, 0),
			Category:      models.GoalEmergency,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            uuid.New(),
			UserID:        userID,
			Name:          "Goa vacation",
			TargetAmount:  60000,
			CurrentAmount: 22000,
			TargetDate:    now.AddDate(0, 6, 0),
			Category:      models.GoalVacation,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}

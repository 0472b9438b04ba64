package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var ErrGoalNotFound = errors.New("goal not found")

// GoalService stores target and saved amounts; progress, remaining and
// forecast figures are derived on every read.
type GoalService struct {
	goals  GoalStore
	logger *zap.Logger
}

func NewGoalService(goals GoalStore, logger *zap.Logger) *GoalService {
	return &GoalService{
		goals:  goals,
		logger: logger,
	}
}

func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	if req.Name == "" || len(req.Name) > 50 {
		return nil, &ValidationError{Message: "name is required and must not exceed 50 characters"}
	}
	if req.TargetAmount < 1 {
		return nil, &ValidationError{Message: "target_amount must be at least 1"}
	}
	if req.CurrentAmount < 0 {
		return nil, &ValidationError{Message: "current_amount must not be negative"}
	}
	if !models.ValidGoalCategory(req.Category) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown goal category %q", req.Category)}
	}

	now := time.Now()
	targetDate, err := parseTargetDate(req.TargetDate, now)
	if err != nil {
		return nil, err
	}

	goal := &models.Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    targetDate,
		Category:      models.GoalCategory(req.Category),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Info("Goal created",
		zap.String("user_id", userID.String()),
		zap.String("goal_id", goal.ID.String()),
	)

	resp := toGoalResponse(goal, now)
	return &resp, nil
}

func (s *GoalService) List(ctx context.Context, userID uuid.UUID) ([]dto.GoalResponse, error) {
	goals, err := s.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]dto.GoalResponse, len(goals))
	for i, g := range goals {
		responses[i] = toGoalResponse(g, now)
	}
	return responses, nil
}

// Update applies the present fields of req to the stored goal.
func (s *GoalService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	goal, err := s.getGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" || len(*req.Name) > 50 {
			return nil, &ValidationError{Message: "name must not be empty or exceed 50 characters"}
		}
		goal.Name = *req.Name
	}
	if req.TargetAmount != nil {
		if *req.TargetAmount < 1 {
			return nil, &ValidationError{Message: "target_amount must be at least 1"}
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		if *req.CurrentAmount < 0 {
			return nil, &ValidationError{Message: "current_amount must not be negative"}
		}
		goal.CurrentAmount = *req.CurrentAmount
	}
	if req.TargetDate != nil {
		targetDate, err := parseTargetDate(*req.TargetDate, time.Now())
		if err != nil {
			return nil, err
		}
		goal.TargetDate = targetDate
	}
	if req.Category != nil {
		if !models.ValidGoalCategory(*req.Category) {
			return nil, &ValidationError{Message: fmt.Sprintf("unknown goal category %q", *req.Category)}
		}
		goal.Category = models.GoalCategory(*req.Category)
	}

	goal.UpdatedAt = time.Now()

	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, err
	}

	resp := toGoalResponse(goal, goal.UpdatedAt)
	return &resp, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.goals.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGoalNotFound
	}

	s.logger.Info("Goal deleted",
		zap.String("user_id", userID.String()),
		zap.String("goal_id", id.String()),
	)
	return nil
}

// Forecast estimates whether a goal can be reached by its target date. The
// current saving rate is the amount saved so far averaged over 30-day months
// since the goal was created.
func (s *GoalService) Forecast(ctx context.Context, userID, id uuid.UUID) (*dto.GoalForecastResponse, error) {
	goal, err := s.getGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	remaining := goal.TargetAmount - goal.CurrentAmount
	if remaining <= 0 {
		return &dto.GoalForecastResponse{CanBeAchieved: true}, nil
	}

	if !goal.TargetDate.After(now) {
		return &dto.GoalForecastResponse{TargetDatePassed: true}, nil
	}

	monthsRemaining := goal.TargetDate.Sub(now).Hours() / 24 / 30
	monthlyNeeded := remaining / monthsRemaining

	monthsElapsed := now.Sub(goal.CreatedAt).Hours() / 24 / 30
	var savingRate float64
	if monthsElapsed > 0 {
		savingRate = goal.CurrentAmount / monthsElapsed
	}

	monthsAtRate := 0
	if savingRate > 0 {
		monthsAtRate = int(math.Ceil(remaining / savingRate))
	}

	return &dto.GoalForecastResponse{
		MonthlySavingNeeded: math.Round(monthlyNeeded*100) / 100,
		CurrentSavingRate:   math.Round(savingRate*100) / 100,
		MonthsAtCurrentRate: monthsAtRate,
		CanBeAchieved:       savingRate >= monthlyNeeded,
	}, nil
}

func (s *GoalService) getGoal(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error) {
	goal, err := s.goals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrGoalNotFound
	}
	return goal, nil
}

// parseTargetDate requires a future date: a goal you cannot still save
// toward is not a goal.
func parseTargetDate(value string, now time.Time) (time.Time, error) {
	targetDate, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &ValidationError{Message: "invalid target_date, expected YYYY-MM-DD"}
	}
	if !targetDate.After(now) {
		return time.Time{}, &ValidationError{Message: "target_date must be in the future"}
	}
	return targetDate, nil
}

func toGoalResponse(g *models.Goal, now time.Time) dto.GoalResponse {
	remaining := g.TargetAmount - g.CurrentAmount
	if remaining < 0 {
		remaining = 0
	}

	progress := 0
	if g.TargetAmount > 0 {
		progress = int(g.CurrentAmount / g.TargetAmount * 100)
		if progress > 100 {
			progress = 100
		}
	}

	daysRemaining := int(math.Ceil(g.TargetDate.Sub(now).Hours() / 24))
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	dailyNeeded := 0.0
	if daysRemaining > 0 && remaining > 0 {
		dailyNeeded = math.Round(remaining/float64(daysRemaining)*100) / 100
	}

	return dto.GoalResponse{
		ID:                g.ID.String(),
		Name:              g.Name,
		TargetAmount:      g.TargetAmount,
		CurrentAmount:     g.CurrentAmount,
		TargetDate:        g.TargetDate.Format("2006-01-02"),
		Category:          string(g.Category),
		Progress:          progress,
		Remaining:         remaining,
		DaysRemaining:     daysRemaining,
		DailySavingNeeded: dailyNeeded,
		CreatedAt:         g.CreatedAt.Format(time.RFC3339),
	}
}

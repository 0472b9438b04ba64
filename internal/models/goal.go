package models

import (
	"time"

	"github.com/google/uuid"
)

type GoalCategory string

const (
	GoalVacation   GoalCategory = "vacation"
	GoalEmergency  GoalCategory = "emergency"
	GoalRetirement GoalCategory = "retirement"
	GoalHome       GoalCategory = "home"
	GoalCar        GoalCategory = "car"
	GoalEducation  GoalCategory = "education"
	GoalOther      GoalCategory = "other"
)

var GoalCategories = []GoalCategory{
	GoalVacation, GoalEmergency, GoalRetirement,
	GoalHome, GoalCar, GoalEducation, GoalOther,
}

// ValidGoalCategory reports whether name is one of the known goal categories.
func ValidGoalCategory(name string) bool {
	for _, c := range GoalCategories {
		if string(c) == name {
			return true
		}
	}
	return false
}

// Goal progress, remaining amount and forecast are derived at read time.
type Goal struct {
	ID            uuid.UUID    `db:"id"`
	UserID        uuid.UUID    `db:"user_id"`
	Name          string       `db:"name"`
	TargetAmount  float64      `db:"target_amount"`
	CurrentAmount float64      `db:"current_amount"`
	TargetDate    time.Time    `db:"target_date"`
	Category      GoalCategory `db:"category"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

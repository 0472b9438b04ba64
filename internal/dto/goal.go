package dto

type CreateGoalRequest struct {
	Name          string  `json:"name" validate:"required,max=50"`
	TargetAmount  float64 `json:"target_amount" validate:"required,gte=1"`
	CurrentAmount float64 `json:"current_amount" validate:"gte=0"`
	TargetDate    string  `json:"target_date" validate:"required"`
	Category      string  `json:"category" validate:"required"`
}

// UpdateGoalRequest uses pointers so absent fields are left unchanged.
type UpdateGoalRequest struct {
	Name          *string  `json:"name"`
	TargetAmount  *float64 `json:"target_amount"`
	CurrentAmount *float64 `json:"current_amount"`
	TargetDate    *string  `json:"target_date"`
	Category      *string  `json:"category"`
}

// GoalResponse carries the stored goal plus progress figures derived at
// read time.
type GoalResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	TargetAmount      float64 `json:"target_amount"`
	CurrentAmount     float64 `json:"current_amount"`
	TargetDate        string  `json:"target_date"`
	Category          string  `json:"category"`
	Progress          int     `json:"progress"`
	Remaining         float64 `json:"remaining"`
	DaysRemaining     int     `json:"days_remaining"`
	DailySavingNeeded float64 `json:"daily_saving_needed"`
	CreatedAt         string  `json:"created_at"`
}

type GoalForecastResponse struct {
	MonthlySavingNeeded float64 `json:"monthly_saving_needed"`
	CurrentSavingRate   float64 `json:"current_saving_rate"`
	MonthsAtCurrentRate int     `json:"months_at_current_rate"`
	CanBeAchieved       bool    `json:"can_be_achieved"`
	TargetDatePassed    bool    `json:"target_date_passed,omitempty"`
}

package dto

type BudgetRequest struct {
	Category string  `json:"category" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	Month    int     `json:"month" validate:"required,min=1,max=12"`
	Year     int     `json:"year" validate:"required,min=2000,max=2100"`
}

// BudgetResponse carries the stored budget plus figures derived at read
// time from that month's expense transactions.
type BudgetResponse struct {
	ID             string  `json:"id"`
	Category       string  `json:"category"`
	Amount         float64 `json:"amount"`
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed int     `json:"percentage_used"`
}

type BudgetTotals struct {
	Budget         float64 `json:"budget"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed int     `json:"percentage_used"`
}

type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
	Totals  BudgetTotals     `json:"totals"`
}

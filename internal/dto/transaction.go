package dto

type CreateTransactionRequest struct {
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description" validate:"required,max=200"`
	Date        string  `json:"date" validate:"required"`
}

type UpdateTransactionRequest struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type TransactionResponse struct {
	ID                   string  `json:"id"`
	Type                 string  `json:"type"`
	Amount               float64 `json:"amount"`
	Category             string  `json:"category"`
	Description          string  `json:"description"`
	Date                 string  `json:"date"`
	ExtractedFromReceipt bool    `json:"extracted_from_receipt"`
	CreatedAt            string  `json:"created_at"`
}

type Pagination struct {
	CurrentPage     int  `json:"current_page"`
	ItemsPerPage    int  `json:"items_per_page"`
	TotalItems      int  `json:"total_items"`
	TotalPages      int  `json:"total_pages"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   Pagination            `json:"pagination"`
}

type SummaryResponse struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	IncomeCount   int     `json:"income_count"`
	ExpenseCount  int     `json:"expense_count"`
	Balance       float64 `json:"balance"`
}

type CategoryTotalResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

type MonthlyTrendResponse struct {
	Month    int     `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

type ChartDataResponse struct {
	ExpensesByCategory []CategoryTotalResponse `json:"expenses_by_category"`
	MonthlyTrends      []MonthlyTrendResponse  `json:"monthly_trends"`
	Year               int                     `json:"year"`
}

type CategoriesResponse struct {
	Expense []string `json:"expense"`
	Income  []string `json:"income"`
}

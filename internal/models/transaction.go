package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Category names match what users see in the UI; all amounts are INR.
const (
	CategoryFood          = "Food"
	CategoryFoodDining    = "Food & Dining"
	CategoryTransport     = "Transportation"
	CategoryEntertainment = "Entertainment"
	CategoryShopping      = "Shopping"
	CategoryHealthcare    = "Healthcare"
	CategoryEducation     = "Education"
	CategoryUtilities     = "Utilities"
	CategoryRent          = "Rent"
	CategoryInsurance     = "Insurance"
	CategoryTravel        = "Travel"
	CategoryOtherExpense  = "Other Expenses"

	CategorySalary      = "Salary"
	CategoryFreelance   = "Freelance"
	CategoryBusiness    = "Business"
	CategoryInvestment  = "Investment"
	CategoryGift        = "Gift"
	CategoryOtherIncome = "Other Income"
)

// ExpenseCategories and IncomeCategories form the closed enumeration a
// transaction's category must belong to.
var (
	ExpenseCategories = []string{
		CategoryFood, CategoryFoodDining, CategoryTransport, CategoryEntertainment,
		CategoryShopping, CategoryHealthcare, CategoryEducation, CategoryUtilities,
		CategoryRent, CategoryInsurance, CategoryTravel, CategoryOtherExpense,
	}
	IncomeCategories = []string{
		CategorySalary, CategoryFreelance, CategoryBusiness,
		CategoryInvestment, CategoryGift, CategoryOtherIncome,
	}
)

// ValidCategory reports whether name is one of the known categories.
func ValidCategory(name string) bool {
	for _, c := range ExpenseCategories {
		if c == name {
			return true
		}
	}
	for _, c := range IncomeCategories {
		if c == name {
			return true
		}
	}
	return false
}

type Transaction struct {
	ID                   uuid.UUID       `db:"id"`
	UserID               uuid.UUID       `db:"user_id"`
	Type                 TransactionType `db:"type"`
	Amount               float64         `db:"amount"`
	Category             string          `db:"category"`
	Description          string          `db:"description"`
	Date                 time.Time       `db:"date"`
	ExtractedFromReceipt bool            `db:"extracted_from_receipt"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Budget is unique per (user, category, month, year); the spent and
// remaining figures are derived at read time, never stored.
type Budget struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Category  string    `db:"category"`
	Amount    float64   `db:"amount"`
	Month     int       `db:"month"`
	Year      int       `db:"year"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

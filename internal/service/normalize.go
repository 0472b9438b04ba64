package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

type recordSource int

const (
	sourceReceipt recordSource = iota
	sourceStatement
)

// errAmountMissing rejects a record whose amount is absent, zero or not
// numeric. This is the only condition that rejects a record; every other
// field has a default.
var errAmountMissing = errors.New("amount missing or not numeric")

const maxDescriptionLen = 200

// normalizeRecord converts one parsed, untrusted key-value structure from
// the model into a domain-valid transaction. It is pure: no I/O, no
// persistence. Defaults, in order: category falls back to the catch-all
// bucket, description to a synthetic label, date to now, and on the
// statement path the type to expense.
func normalizeRecord(fields map[string]interface{}, source recordSource, now time.Time) (*models.Transaction, error) {
	amount, ok := parseAmount(fields["amount"])
	if !ok {
		return nil, errAmountMissing
	}

	tx := &models.Transaction{
		Type:        models.TypeExpense,
		Amount:      amount,
		Category:    normalizeCategory(stringField(fields, "category")),
		Description: normalizeDescription(stringField(fields, "description"), source),
		Date:        normalizeDate(stringField(fields, "date"), now),
	}

	if source == sourceStatement && stringField(fields, "type") == string(models.TypeIncome) {
		tx.Type = models.TypeIncome
	}

	return tx, nil
}

// parseAmount coerces a model-reported amount into a positive float. Models
// return amounts as JSON numbers or as strings ("45.00"); both are accepted.
// Statement amounts may be signed (debits negative), so the absolute value
// is kept and the direction lives in the type field.
func parseAmount(v interface{}) (float64, bool) {
	var d decimal.Decimal

	switch value := v.(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, false
		}
		d = decimal.NewFromFloat(value)
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return 0, false
		}
		d = parsed
	default:
		return 0, false
	}

	if d.IsZero() {
		return 0, false
	}

	return d.Abs().InexactFloat64(), true
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if models.ValidCategory(category) {
		return category
	}
	return models.CategoryOtherExpense
}

func normalizeDescription(description string, source recordSource) string {
	description = strings.TrimSpace(description)
	if description == "" {
		if source == sourceStatement {
			description = "PDF extracted transaction"
		} else {
			description = "Receipt transaction"
		}
	}
	if len(description) > maxDescriptionLen {
		description = description[:maxDescriptionLen]
	}
	return description
}

// normalizeDate never fails: an absent, unparseable or future date falls
// back to now.
func normalizeDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if date, err := time.Parse(layout, raw); err == nil {
			if date.After(now) {
				return now
			}
			return date
		}
	}

	return now
}

func stringField(fields map[string]interface{}, key string) string {
	switch value := fields[key].(type) {
	case string:
		return value
	case float64:
		return fmt.Sprintf("%v", value)
	default:
		return ""
	}
}

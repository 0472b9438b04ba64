package service

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"fintrack/internal/models"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestNormalizeRecordAmountOnly(t *testing.T) {
	tx, err := normalizeRecord(map[string]interface{}{"amount": 12.5}, sourceReceipt, testNow)
	if err != nil {
		t.Fatalf("normalizeRecord: %v", err)
	}

	if tx.Amount != 12.5 {
		t.Errorf("amount = %v, want 12.5", tx.Amount)
	}
	if tx.Type != models.TypeExpense {
		t.Errorf("type = %v, want expense", tx.Type)
	}
	if tx.Category != models.CategoryOtherExpense {
		t.Errorf("category = %q, want %q", tx.Category, models.CategoryOtherExpense)
	}
	if tx.Description != "Receipt transaction" {
		t.Errorf("description = %q", tx.Description)
	}
	if !tx.Date.Equal(testNow) {
		t.Errorf("date = %v, want now", tx.Date)
	}
}

func TestNormalizeRecordMissingAmount(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"absent":      {"category": "Food"},
		"zero":        {"amount": 0.0},
		"non-numeric": {"amount": "twelve"},
		"null":        {"amount": nil},
	}

	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := normalizeRecord(fields, sourceReceipt, testNow)
			if !errors.Is(err, errAmountMissing) {
				t.Errorf("err = %v, want errAmountMissing", err)
			}
		})
	}
}

func TestNormalizeRecordStringAmount(t *testing.T) {
	tx, err := normalizeRecord(map[string]interface{}{"amount": "45.00"}, sourceReceipt, testNow)
	if err != nil {
		t.Fatalf("normalizeRecord: %v", err)
	}
	if tx.Amount != 45.00 {
		t.Errorf("amount = %v, want 45", tx.Amount)
	}
}

func TestNormalizeRecordNegativeStatementAmount(t *testing.T) {
	fields := map[string]interface{}{"amount": -250.0, "type": "expense"}

	tx, err := normalizeRecord(fields, sourceStatement, testNow)
	if err != nil {
		t.Fatalf("normalizeRecord: %v", err)
	}
	if tx.Amount != 250.0 {
		t.Errorf("amount = %v, want 250 (absolute value)", tx.Amount)
	}
	if tx.Type != models.TypeExpense {
		t.Errorf("type = %v, want expense", tx.Type)
	}
}

func TestNormalizeRecordStatementIncomeType(t *testing.T) {
	fields := map[string]interface{}{"amount": 50000.0, "type": "income", "category": "Salary"}

	tx, err := normalizeRecord(fields, sourceStatement, testNow)
	if err != nil {
		t.Fatalf("normalizeRecord: %v", err)
	}
	if tx.Type != models.TypeIncome {
		t.Errorf("type = %v, want income", tx.Type)
	}
	if tx.Category != models.CategorySalary {
		t.Errorf("category = %q, want Salary", tx.Category)
	}
}

func TestNormalizeRecordReceiptIgnoresTypeField(t *testing.T) {
	// Receipts are always expenses even if the model claims otherwise.
	fields := map[string]interface{}{"amount": 10.0, "type": "income"}

	tx, err := normalizeRecord(fields, sourceReceipt, testNow)
	if err != nil {
		t.Fatalf("normalizeRecord: %v", err)
	}
	if tx.Type != models.TypeExpense {
		t.Errorf("type = %v, want expense", tx.Type)
	}
}

func TestNormalizeRecordUnknownCategory(t *testing.T) {
	fields := map[string]interface{}{"amount": 10.0, "category": "Cryptomining"}

	tx, err := normalizeRecord(fields, sourceReceipt, testNow)
	if err != nil {
		t.Fatalf("normalizeRecord: %v", err)
	}
	if tx.Category != models.CategoryOtherExpense {
		t.Errorf("category = %q, want catch-all", tx.Category)
	}
}

func TestNormalizeRecordStatementDescriptionDefault(t *testing.T) {
	tx, err := normalizeRecord(map[string]interface{}{"amount": 10.0}, sourceStatement, testNow)
	if err != nil {
		t.Fatalf("normalizeRecord: %v", err)
	}
	if tx.Description != "PDF extracted transaction" {
		t.Errorf("description = %q", tx.Description)
	}
}

func TestNormalizeRecordLongDescriptionTruncated(t *testing.T) {
	fields := map[string]interface{}{
		"amount":      10.0,
		"description": strings.Repeat("x", 500),
	}

	tx, err := normalizeRecord(fields, sourceReceipt, testNow)
	if err != nil {
		t.Fatalf("normalizeRecord: %v", err)
	}
	if len(tx.Description) != maxDescriptionLen {
		t.Errorf("description length = %d, want %d", len(tx.Description), maxDescriptionLen)
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"plain date", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"future date clamps to now", "2030-01-01", testNow},
		{"garbage falls back to now", "yesterday", testNow},
		{"empty falls back to now", "", testNow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeDate(tc.raw, testNow)
			if !got.Equal(tc.want) {
				t.Errorf("normalizeDate(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseAmountRejectsSpecialValues(t *testing.T) {
	for _, v := range []interface{}{math.NaN(), math.Inf(1), math.Inf(-1), true, nil, ""} {
		if _, ok := parseAmount(v); ok {
			t.Errorf("parseAmount(%v) accepted, want rejected", v)
		}
	}
}

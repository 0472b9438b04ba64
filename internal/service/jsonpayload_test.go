package service

import (
	"errors"
	"testing"
)

func TestExtractJSONObjectFromNoise(t *testing.T) {
	text := `Here is the result: {"amount": 5.00, "category": "Food"} hope that helps!`

	value, err := extractJSON(text, shapeObject)
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}

	fields, ok := value.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got %T", value)
	}
	if fields["amount"] != 5.00 {
		t.Errorf("amount = %v, want 5", fields["amount"])
	}
	if fields["category"] != "Food" {
		t.Errorf("category = %v, want Food", fields["category"])
	}
}

func TestExtractJSONObjectInMarkdownFence(t *testing.T) {
	text := "```json\n{\"amount\": 12.5}\n```"

	value, err := extractJSON(text, shapeObject)
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}
	if value.(map[string]interface{})["amount"] != 12.5 {
		t.Errorf("amount = %v, want 12.5", value.(map[string]interface{})["amount"])
	}
}

func TestExtractJSONArray(t *testing.T) {
	text := `Transactions found:
[{"amount": 1}, {"amount": 2}]
Done.`

	value, err := extractJSON(text, shapeArray)
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}

	elements, ok := value.([]interface{})
	if !ok {
		t.Fatalf("expected slice, got %T", value)
	}
	if len(elements) != 2 {
		t.Errorf("len = %d, want 2", len(elements))
	}
}

func TestExtractJSONNoBrackets(t *testing.T) {
	_, err := extractJSON("I could not find any transactions in this document.", shapeObject)

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if malformed.RawText == "" {
		t.Error("RawText should carry the original response")
	}
}

func TestExtractJSONInvalidPayload(t *testing.T) {
	_, err := extractJSON(`{"amount": broken}`, shapeObject)

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if malformed.Err == nil {
		t.Error("decode failure should wrap the JSON error")
	}
}

func TestExtractJSONShapeIsExplicit(t *testing.T) {
	// An array response requested as an object must fail, not auto-detect.
	_, err := extractJSON(`["one", "two"]`, shapeObject)

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

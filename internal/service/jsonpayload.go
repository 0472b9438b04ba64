package service

import (
	"encoding/json"
	"strings"
)

type payloadShape int

const (
	shapeObject payloadShape = iota
	shapeArray
)

// extractJSON locates and decodes a JSON value of the given shape inside
// free-form model output. Models routinely wrap the payload in prose or
// markdown fences, so this scans for the first opening and last closing
// bracket and decodes the substring between them. The scan is substring
// based, not grammar aware: multiple or nested top-level payloads in the
// same text can fool it. The shape is always chosen by the caller; there is
// no auto-detection and no fallback value on failure.
func extractJSON(text string, shape payloadShape) (interface{}, error) {
	opener, closer := "{", "}"
	if shape == shapeArray {
		opener, closer = "[", "]"
	}

	start := strings.Index(text, opener)
	end := strings.LastIndex(text, closer)
	if start == -1 || end == -1 || end < start {
		return nil, &MalformedResponseError{RawText: text}
	}

	payload := text[start : end+1]

	if shape == shapeArray {
		var value []interface{}
		if err := json.Unmarshal([]byte(payload), &value); err != nil {
			return nil, &MalformedResponseError{RawText: text, Err: err}
		}
		return value, nil
	}

	var value map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return nil, &MalformedResponseError{RawText: text, Err: err}
	}
	return value, nil
}

package service

import "fmt"

// ValidationError reports a user-correctable problem: a wrong file type for
// the chosen extraction path, or an extraction that yielded no usable amount.
// RawText carries whatever the model returned, for operator diagnosis.
type ValidationError struct {
	Message string
	RawText string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MalformedResponseError means the extraction service returned text with no
// locatable or decodable JSON payload. This is a processing error, not a
// user input error.
type MalformedResponseError struct {
	RawText string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no decodable JSON payload in model response: %v", e.Err)
	}
	return "no JSON payload found in model response"
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// NoDataError means statement extraction parsed cleanly but produced zero
// accepted records. Reported distinctly from a malformed response so
// operators can tell "model found nothing" from "output was unparseable".
type NoDataError struct {
	RawText string
}

func (e *NoDataError) Error() string {
	return "no transactions found in the document"
}

// ProcessingError is the catch-all for extraction-service transport errors
// or unexpected failures inside the pipeline.
type ProcessingError struct {
	Stage string
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

package dto

// ExtractedFields is the raw field set recovered from the model response,
// returned alongside the created transaction for diagnosability.
type ExtractedFields struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	RawText     string  `json:"raw_text,omitempty"`
}

type ReceiptUploadResponse struct {
	Message       string              `json:"message"`
	Transaction   TransactionResponse `json:"transaction"`
	ExtractedData ExtractedFields     `json:"extracted_data"`
}

type StatementExtractResponse struct {
	Message      string                `json:"message"`
	Count        int                   `json:"count"`
	SkippedCount int                   `json:"skipped_count"`
	Transactions []TransactionResponse `json:"transactions"`
}

type UploadHistoryResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   Pagination            `json:"pagination"`
}

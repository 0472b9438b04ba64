package service

import (
	"context"
	"fmt"
	"strings"

	"fintrack/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Extractor is the boundary to the external text-extraction model. One
// synchronous call per task, no retries: the raw text (or the error) goes
// straight back to the orchestrator.
type Extractor interface {
	ExtractReceiptImage(ctx context.Context, data []byte, mimeType string) (string, error)
	ExtractReceiptPDF(ctx context.Context, data []byte) (string, error)
	ExtractStatementPDF(ctx context.Context, data []byte) (string, error)
}

// TextGenerator produces free-form text from a prompt. Used by the
// insights service.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

const receiptImagePrompt = `Analyze this receipt/bill image and extract the following information:

1. Total amount (the final amount to be paid)
2. Date of transaction (in YYYY-MM-DD format)
3. Type of transaction (usually "Expense" for receipts)
4. Category based on the merchant/items:
   - Food & Dining (restaurants, groceries, food delivery)
   - Transportation (gas, parking, public transport)
   - Shopping (retail, clothing, electronics)
   - Healthcare (pharmacy, medical, dental)
   - Entertainment (movies, games, subscriptions)
   - Utilities (electricity, water, internet, phone)
   - Other (anything else)

Return ONLY a valid JSON object in this exact format:
{"amount": 0.00, "date": "YYYY-MM-DD", "type": "Expense", "category": "Category Name"}

If you cannot determine a value, use reasonable defaults:
- date: today's date
- type: "Expense"
- category: "Other"`

const receiptPDFPrompt = `This is a receipt PDF. Extract:
- total amount
- transaction date (YYYY-MM-DD)
- merchant name
- category (Food, Transportation, Shopping, Healthcare, Entertainment, Utilities, Other)
Return ONLY a JSON object:
{"amount":123.45,"date":"YYYY-MM-DD","merchant":"string","category":"string"}`

const statementPrompt = `This is a bank statement PDF. Extract all transactions.
Each transaction must have:
- date (YYYY-MM-DD)
- amount (positive for credit, negative for debit)
- description
- type ("income" or "expense")
- category (Food, Transportation, Shopping, Healthcare, Entertainment, Utilities, Salary, Investment, Other)
Return ONLY a JSON array:
[{"date":"YYYY-MM-DD","amount":123.45,"description":"string","type":"expense","category":"string"}]`

// GeminiService adapts the Gemini API to the Extractor and TextGenerator
// interfaces. The client is constructed once at startup and injected;
// construction fails when the API key is absent.
type GeminiService struct {
	client         *genai.Client
	receiptModel   string
	statementModel string
	logger         *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiService{
		client:         client,
		receiptModel:   cfg.ReceiptModel,
		statementModel: cfg.StatementModel,
		logger:         logger,
	}, nil
}

func (s *GeminiService) ExtractReceiptImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	return s.generate(ctx, s.receiptModel, []*genai.Part{
		{Text: receiptImagePrompt},
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
	})
}

func (s *GeminiService) ExtractReceiptPDF(ctx context.Context, data []byte) (string, error) {
	return s.generate(ctx, s.statementModel, []*genai.Part{
		{Text: receiptPDFPrompt},
		{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: data}},
	})
}

func (s *GeminiService) ExtractStatementPDF(ctx context.Context, data []byte) (string, error) {
	return s.generate(ctx, s.statementModel, []*genai.Part{
		{Text: statementPrompt},
		{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: data}},
	})
}

func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, s.statementModel, []*genai.Part{{Text: prompt}})
}

func (s *GeminiService) generate(ctx context.Context, model string, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	resp, err := s.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", model)
	}

	s.logger.Debug("Model response received",
		zap.String("model", model),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

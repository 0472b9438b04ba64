package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeExtractor records calls and plays back canned responses.
type fakeExtractor struct {
	imageCalls     int
	pdfCalls       int
	statementCalls int

	imageResponse     string
	pdfResponse       string
	statementResponse string
	err               error
}

func (f *fakeExtractor) ExtractReceiptImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	f.imageCalls++
	return f.imageResponse, f.err
}

func (f *fakeExtractor) ExtractReceiptPDF(ctx context.Context, data []byte) (string, error) {
	f.pdfCalls++
	return f.pdfResponse, f.err
}

func (f *fakeExtractor) ExtractStatementPDF(ctx context.Context, data []byte) (string, error) {
	f.statementCalls++
	return f.statementResponse, f.err
}

// fakeTransactionStore keeps created transactions in memory.
type fakeTransactionStore struct {
	created []*models.Transaction
	err     error
}

func (f *fakeTransactionStore) Create(ctx context.Context, tx *models.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, tx)
	return nil
}

func (f *fakeTransactionStore) CreateBatch(ctx context.Context, transactions []*models.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, transactions...)
	return nil
}

func (f *fakeTransactionStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	for _, tx := range f.created {
		if tx.ID == id && tx.UserID == userID {
			return tx, nil
		}
	}
	return nil, errors.New("no rows")
}

func (f *fakeTransactionStore) List(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, tx := range f.created {
		if tx.UserID != userID {
			continue
		}
		if filter.ExtractedOnly && !tx.ExtractedFromReceipt {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (f *fakeTransactionStore) Count(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) (int, error) {
	list, _ := f.List(ctx, userID, filter)
	return len(list), nil
}

func (f *fakeTransactionStore) Update(ctx context.Context, tx *models.Transaction) error {
	return f.err
}

func (f *fakeTransactionStore) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	return false, f.err
}

func (f *fakeTransactionStore) SummaryByType(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) ([]repository.TypeTotal, error) {
	return nil, f.err
}

func (f *fakeTransactionStore) ExpensesByCategory(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) ([]repository.CategoryTotal, error) {
	return nil, f.err
}

func (f *fakeTransactionStore) MonthlyTrends(ctx context.Context, userID uuid.UUID, year int) ([]repository.MonthlyTotal, error) {
	return nil, f.err
}

func newTestReceiptService(t *testing.T, store *fakeTransactionStore, extractor *fakeExtractor) (*ReceiptService, string) {
	t.Helper()
	dir := t.TempDir()
	return NewReceiptService(store, extractor, dir, zap.NewNop()), dir
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("upload dir should be empty after the request, found %d files", len(entries))
	}
}

func TestProcessReceiptImage(t *testing.T) {
	store := &fakeTransactionStore{}
	extractor := &fakeExtractor{
		imageResponse: `Sure! {"amount":"45.00","date":"2024-03-01","category":"Food & Dining"}`,
	}
	svc, dir := newTestReceiptService(t, store, extractor)

	resp, err := svc.ProcessReceipt(context.Background(), uuid.New(), strings.NewReader("fake image bytes"), "receipt.jpg")
	if err != nil {
		t.Fatalf("ProcessReceipt: %v", err)
	}

	if extractor.imageCalls != 1 || extractor.pdfCalls != 0 {
		t.Errorf("calls: image=%d pdf=%d, want image path only", extractor.imageCalls, extractor.pdfCalls)
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d transactions, want 1", len(store.created))
	}

	tx := store.created[0]
	if tx.Amount != 45.00 {
		t.Errorf("amount = %v, want 45", tx.Amount)
	}
	if tx.Category != models.CategoryFoodDining {
		t.Errorf("category = %q, want Food & Dining", tx.Category)
	}
	if !tx.ExtractedFromReceipt {
		t.Error("transaction must be flagged as extracted")
	}
	if tx.Date.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("date = %v, want 2024-03-01", tx.Date)
	}
	if resp.ExtractedData.RawText == "" {
		t.Error("response should carry the raw model text")
	}

	assertNoTempFiles(t, dir)
}

func TestProcessReceiptPDFUsesPDFPath(t *testing.T) {
	store := &fakeTransactionStore{}
	extractor := &fakeExtractor{
		pdfResponse: `{"amount": 120.0, "merchant": "ACME"}`,
	}
	svc, dir := newTestReceiptService(t, store, extractor)

	_, err := svc.ProcessReceipt(context.Background(), uuid.New(), strings.NewReader("%PDF-1.4"), "bill.PDF")
	if err != nil {
		t.Fatalf("ProcessReceipt: %v", err)
	}

	if extractor.pdfCalls != 1 || extractor.imageCalls != 0 {
		t.Errorf("calls: image=%d pdf=%d, want pdf path only", extractor.imageCalls, extractor.pdfCalls)
	}

	assertNoTempFiles(t, dir)
}

func TestProcessReceiptNoAmount(t *testing.T) {
	store := &fakeTransactionStore{}
	extractor := &fakeExtractor{
		imageResponse: `{"category": "Food", "date": "2024-03-01"}`,
	}
	svc, dir := newTestReceiptService(t, store, extractor)

	_, err := svc.ProcessReceipt(context.Background(), uuid.New(), strings.NewReader("img"), "receipt.png")

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validation.RawText == "" {
		t.Error("ValidationError should carry the raw model text")
	}
	if len(store.created) != 0 {
		t.Errorf("nothing should be persisted, created %d", len(store.created))
	}

	assertNoTempFiles(t, dir)
}

func TestProcessReceiptMalformedResponse(t *testing.T) {
	store := &fakeTransactionStore{}
	extractor := &fakeExtractor{
		imageResponse: "I am unable to read this image.",
	}
	svc, dir := newTestReceiptService(t, store, extractor)

	_, err := svc.ProcessReceipt(context.Background(), uuid.New(), strings.NewReader("img"), "receipt.png")

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if len(store.created) != 0 {
		t.Errorf("nothing should be persisted, created %d", len(store.created))
	}

	assertNoTempFiles(t, dir)
}

func TestProcessStatement(t *testing.T) {
	store := &fakeTransactionStore{}
	extractor := &fakeExtractor{
		statementResponse: `[
			{"date":"2024-03-01","amount":-120.50,"description":"Grocery store","type":"expense","category":"Food"},
			{"date":"2024-03-05","amount":50000,"description":"March salary","type":"income","category":"Salary"},
			{"date":"2024-03-07","description":"no amount here","type":"expense"}
		]`,
	}
	svc, dir := newTestReceiptService(t, store, extractor)

	resp, err := svc.ProcessStatement(context.Background(), uuid.New(), strings.NewReader("%PDF-1.4"), "statement.pdf")
	if err != nil {
		t.Fatalf("ProcessStatement: %v", err)
	}

	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
	if resp.SkippedCount != 1 {
		t.Errorf("skipped = %d, want 1", resp.SkippedCount)
	}
	if len(store.created) != 2 {
		t.Fatalf("created %d transactions, want 2", len(store.created))
	}

	if store.created[0].Amount != 120.50 || store.created[0].Type != models.TypeExpense {
		t.Errorf("first record = %+v, want 120.50 expense", store.created[0])
	}
	if store.created[1].Amount != 50000 || store.created[1].Type != models.TypeIncome {
		t.Errorf("second record = %+v, want 50000 income", store.created[1])
	}

	assertNoTempFiles(t, dir)
}

func TestProcessStatementRejectsNonPDF(t *testing.T) {
	store := &fakeTransactionStore{}
	extractor := &fakeExtractor{}
	svc, dir := newTestReceiptService(t, store, extractor)

	_, err := svc.ProcessStatement(context.Background(), uuid.New(), strings.NewReader("img"), "statement.jpg")

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if extractor.statementCalls != 0 {
		t.Errorf("extractor called %d times, the file type check must come first", extractor.statementCalls)
	}

	assertNoTempFiles(t, dir)
}

func TestProcessStatementAllRecordsSkipped(t *testing.T) {
	store := &fakeTransactionStore{}
	extractor := &fakeExtractor{
		statementResponse: `[{"description":"a"},{"description":"b"}]`,
	}
	svc, dir := newTestReceiptService(t, store, extractor)

	_, err := svc.ProcessStatement(context.Background(), uuid.New(), strings.NewReader("%PDF-1.4"), "statement.pdf")

	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("expected NoDataError, got %v", err)
	}
	if len(store.created) != 0 {
		t.Errorf("nothing should be persisted, created %d", len(store.created))
	}

	assertNoTempFiles(t, dir)
}

func TestProcessReceiptExtractorFailure(t *testing.T) {
	store := &fakeTransactionStore{}
	extractor := &fakeExtractor{err: errors.New("model unavailable")}
	svc, dir := newTestReceiptService(t, store, extractor)

	_, err := svc.ProcessReceipt(context.Background(), uuid.New(), strings.NewReader("img"), "receipt.png")

	var processing *ProcessingError
	if !errors.As(err, &processing) {
		t.Fatalf("expected ProcessingError, got %v", err)
	}

	assertNoTempFiles(t, dir)
}

func TestGetUploadHistoryFiltersExtracted(t *testing.T) {
	userID := uuid.New()
	store := &fakeTransactionStore{
		created: []*models.Transaction{
			{ID: uuid.New(), UserID: userID, ExtractedFromReceipt: true},
			{ID: uuid.New(), UserID: userID, ExtractedFromReceipt: false},
			{ID: uuid.New(), UserID: userID, ExtractedFromReceipt: true},
		},
	}
	svc, _ := newTestReceiptService(t, store, &fakeExtractor{})

	resp, err := svc.GetUploadHistory(context.Background(), userID, 1, 10)
	if err != nil {
		t.Fatalf("GetUploadHistory: %v", err)
	}

	if len(resp.Transactions) != 2 {
		t.Errorf("history has %d entries, want 2 extracted only", len(resp.Transactions))
	}
	if resp.Pagination.TotalItems != 2 {
		t.Errorf("total = %d, want 2", resp.Pagination.TotalItems)
	}
}

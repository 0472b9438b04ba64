package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceiptService is the single entry point for upload requests. It owns the
// temporary file for the duration of one request and guarantees it is
// removed exactly once, success or failure.
type ReceiptService struct {
	txStore   TransactionStore
	extractor Extractor
	uploadDir string
	logger    *zap.Logger
}

func NewReceiptService(txStore TransactionStore, extractor Extractor, uploadDir string, logger *zap.Logger) *ReceiptService {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &ReceiptService{
		txStore:   txStore,
		extractor: extractor,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// ProcessReceipt extracts a single transaction from an uploaded receipt.
// PDFs go through statement-style single-record extraction, images through
// image extraction. The record must carry a usable amount; otherwise a
// ValidationError surfaces the raw model text and nothing is persisted.
func (s *ReceiptService) ProcessReceipt(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (*dto.ReceiptUploadResponse, error) {
	filePath, err := s.saveTempFile(file, fileName)
	if err != nil {
		return nil, &ProcessingError{Stage: "file intake", Err: err}
	}
	defer s.removeTempFile(filePath)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &ProcessingError{Stage: "file intake", Err: err}
	}

	ext := strings.ToLower(filepath.Ext(fileName))

	var raw string
	if ext == ".pdf" {
		raw, err = s.extractor.ExtractReceiptPDF(ctx, data)
	} else {
		raw, err = s.extractor.ExtractReceiptImage(ctx, data, mimeTypeForExt(ext))
	}
	if err != nil {
		return nil, &ProcessingError{Stage: "extraction", Err: err}
	}

	fields, err := extractJSON(raw, shapeObject)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record, err := normalizeRecord(fields.(map[string]interface{}), sourceReceipt, now)
	if err != nil {
		return nil, &ValidationError{
			Message: "Could not extract transaction data from receipt",
			RawText: raw,
		}
	}

	tx := s.buildTransaction(userID, record, now)
	if err := s.txStore.Create(ctx, tx); err != nil {
		return nil, &ProcessingError{Stage: "persistence", Err: err}
	}

	s.logger.Info("Receipt processed",
		zap.String("user_id", userID.String()),
		zap.String("transaction_id", tx.ID.String()),
		zap.Float64("amount", tx.Amount),
	)

	return &dto.ReceiptUploadResponse{
		Message:     "Receipt processed successfully",
		Transaction: toTransactionResponse(tx),
		ExtractedData: dto.ExtractedFields{
			Amount:      tx.Amount,
			Category:    tx.Category,
			Description: tx.Description,
			Date:        tx.Date.Format("2006-01-02"),
			RawText:     raw,
		},
	}, nil
}

// ProcessStatement extracts zero or more transactions from a bank-statement
// PDF and persists the accepted ones in a single batch. Records without a
// usable amount are dropped; the response reports how many were skipped.
// Non-PDF uploads are rejected before the extraction service is called.
func (s *ReceiptService) ProcessStatement(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (*dto.StatementExtractResponse, error) {
	filePath, err := s.saveTempFile(file, fileName)
	if err != nil {
		return nil, &ProcessingError{Stage: "file intake", Err: err}
	}
	defer s.removeTempFile(filePath)

	if strings.ToLower(filepath.Ext(fileName)) != ".pdf" {
		return nil, &ValidationError{Message: "Only PDF files are allowed for transaction extraction"}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &ProcessingError{Stage: "file intake", Err: err}
	}

	raw, err := s.extractor.ExtractStatementPDF(ctx, data)
	if err != nil {
		return nil, &ProcessingError{Stage: "extraction", Err: err}
	}

	elements, err := extractJSON(raw, shapeArray)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var transactions []*models.Transaction
	skipped := 0
	for _, element := range elements.([]interface{}) {
		fields, ok := element.(map[string]interface{})
		if !ok {
			skipped++
			continue
		}
		record, err := normalizeRecord(fields, sourceStatement, now)
		if errors.Is(err, errAmountMissing) {
			skipped++
			continue
		}
		transactions = append(transactions, s.buildTransaction(userID, record, now))
	}

	if len(transactions) == 0 {
		return nil, &NoDataError{RawText: raw}
	}

	if err := s.txStore.CreateBatch(ctx, transactions); err != nil {
		return nil, &ProcessingError{Stage: "persistence", Err: err}
	}

	s.logger.Info("Statement processed",
		zap.String("user_id", userID.String()),
		zap.Int("accepted", len(transactions)),
		zap.Int("skipped", skipped),
	)

	responses := make([]dto.TransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = toTransactionResponse(tx)
	}

	return &dto.StatementExtractResponse{
		Message:      fmt.Sprintf("Successfully extracted %d transactions from PDF", len(transactions)),
		Count:        len(transactions),
		SkippedCount: skipped,
		Transactions: responses,
	}, nil
}

// GetUploadHistory lists extraction-derived transactions, newest first.
func (s *ReceiptService) GetUploadHistory(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.UploadHistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := repository.TransactionFilter{
		ExtractedOnly: true,
		SortBy:        "created_at",
		SortOrder:     "desc",
		Limit:         limit,
		Offset:        (page - 1) * limit,
	}

	transactions, err := s.txStore.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.txStore.Count(ctx, userID, repository.TransactionFilter{ExtractedOnly: true})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = toTransactionResponse(tx)
	}

	return &dto.UploadHistoryResponse{
		Transactions: responses,
		Pagination:   buildPagination(page, limit, total),
	}, nil
}

func (s *ReceiptService) buildTransaction(userID uuid.UUID, record *models.Transaction, now time.Time) *models.Transaction {
	return &models.Transaction{
		ID:                   uuid.New(),
		UserID:               userID,
		Type:                 record.Type,
		Amount:               record.Amount,
		Category:             record.Category,
		Description:          sanitizeUTF8(record.Description),
		Date:                 record.Date,
		ExtractedFromReceipt: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// saveTempFile writes the upload to a uniquely named file scoped to this
// request. Unique naming keeps concurrent uploads from colliding.
func (s *ReceiptService) saveTempFile(file io.Reader, fileName string) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(fileName))
	filePath := filepath.Join(s.uploadDir, name)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save temp file: %w", err)
	}

	return filePath, nil
}

// removeTempFile deletes the temp file; a failed delete is logged and not
// escalated. A leaked file is an accepted residual risk, never a reason to
// fail the request.
func (s *ReceiptService) removeTempFile(filePath string) {
	if err := os.Remove(filePath); err != nil {
		s.logger.Warn("Failed to remove temp file",
			zap.String("path", filePath),
			zap.Error(err),
		)
	}
}

func mimeTypeForExt(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "image/png"
	}
}

func toTransactionResponse(tx *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                   tx.ID.String(),
		Type:                 string(tx.Type),
		Amount:               tx.Amount,
		Category:             tx.Category,
		Description:          tx.Description,
		Date:                 tx.Date.Format("2006-01-02"),
		ExtractedFromReceipt: tx.ExtractedFromReceipt,
		CreatedAt:            tx.CreatedAt.Format(time.RFC3339),
	}
}

func buildPagination(page, limit, total int) dto.Pagination {
	totalPages := (total + limit - 1) / limit
	return dto.Pagination{
		CurrentPage:     page,
		ItemsPerPage:    limit,
		TotalItems:      total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

package handlers

import (
	"errors"
	"path/filepath"
	"strings"

	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var allowedReceiptExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

type ReceiptHandler struct {
	receiptService *service.ReceiptService
	maxFileSize    int64
	logger         *zap.Logger
}

func NewReceiptHandler(receiptService *service.ReceiptService, maxFileSize int64, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// Upload godoc
// @Summary Upload a receipt
// @Description Upload a receipt image or PDF; a transaction is extracted and created
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param receipt formData file true "Receipt file (jpg, jpeg, png or pdf, max 20MB)"
// @Security Bearer
// @Success 201 {object} dto.ReceiptUploadResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/receipts/upload [post]
func (h *ReceiptHandler) Upload(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Receipt file is required",
		})
	}

	if msg := h.checkFile(file.Filename, file.Size); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msg,
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	resp, err := h.receiptService.ProcessReceipt(c.Context(), userID, src, file.Filename)
	if err != nil {
		return h.mapError(c, err, "Failed to process receipt")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ExtractPDF godoc
// @Summary Extract transactions from a bank statement
// @Description Upload a bank statement PDF; all recognized transactions are created in one batch
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param pdf formData file true "Statement PDF (max 20MB)"
// @Security Bearer
// @Success 201 {object} dto.StatementExtractResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/receipts/pdf-extract [post]
func (h *ReceiptHandler) ExtractPDF(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	file, err := c.FormFile("pdf")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "PDF file is required",
		})
	}

	if msg := h.checkFile(file.Filename, file.Size); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msg,
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	resp, err := h.receiptService.ProcessStatement(c.Context(), userID, src, file.Filename)
	if err != nil {
		return h.mapError(c, err, "Failed to extract transactions")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// History godoc
// @Summary Upload history
// @Description List transactions that were created from uploaded documents
// @Tags receipts
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Security Bearer
// @Success 200 {object} dto.UploadHistoryResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/receipts/history [get]
func (h *ReceiptHandler) History(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resp, err := h.receiptService.GetUploadHistory(c.Context(), userID, c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		h.logger.Error("Failed to load upload history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load upload history",
		})
	}

	return c.JSON(resp)
}

// checkFile enforces the size and extension limits before anything is
// written to disk or sent to the extraction service.
func (h *ReceiptHandler) checkFile(fileName string, size int64) string {
	if size > h.maxFileSize {
		return "File exceeds the maximum allowed size"
	}
	if !allowedReceiptExts[strings.ToLower(filepath.Ext(fileName))] {
		return "Only jpg, jpeg, png and pdf files are allowed"
	}
	return ""
}

func (h *ReceiptHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	var (
		validation *service.ValidationError
		noData     *service.NoDataError
		malformed  *service.MalformedResponseError
	)

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    validation.Message,
			"raw_text": validation.RawText,
		})
	case errors.As(err, &noData):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "No transactions found in the document",
			"raw_text": noData.RawText,
		})
	case errors.As(err, &malformed):
		h.logger.Warn("Extraction returned unusable output",
			zap.Int("raw_length", len(malformed.RawText)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Extraction service returned an unusable response",
		})
	default:
		h.logger.Error(fallback, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallback,
		})
	}
}

package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UploadObserver receives lifecycle events for upload requests. It is pure
// observability: implementations must not affect request handling.
type UploadObserver interface {
	UploadStarted(contentLength int, contentType string)
	UploadCompleted(duration time.Duration, status int)
	UploadFailed(duration time.Duration, err error)
}

type logUploadObserver struct {
	logger *zap.Logger
}

func (o *logUploadObserver) UploadStarted(contentLength int, contentType string) {
	o.logger.Info("Upload started",
		zap.Int("content_length", contentLength),
		zap.String("content_type", contentType),
	)
}

func (o *logUploadObserver) UploadCompleted(duration time.Duration, status int) {
	o.logger.Info("Upload completed",
		zap.Duration("duration", duration),
		zap.Int("status", status),
	)
}

func (o *logUploadObserver) UploadFailed(duration time.Duration, err error) {
	o.logger.Warn("Upload failed",
		zap.Duration("duration", duration),
		zap.Error(err),
	)
}

// NewLogUploadObserver returns an observer that logs upload events.
func NewLogUploadObserver(logger *zap.Logger) UploadObserver {
	return &logUploadObserver{logger: logger}
}

// UploadMonitoring reports request start/completion/failure to the observer.
// A nil observer disables monitoring entirely.
func UploadMonitoring(observer UploadObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if observer == nil {
			return c.Next()
		}

		start := time.Now()
		observer.UploadStarted(c.Context().Request.Header.ContentLength(), c.Get("Content-Type"))

		err := c.Next()
		if err != nil {
			observer.UploadFailed(time.Since(start), err)
			return err
		}

		observer.UploadCompleted(time.Since(start), c.Response().StatusCode())
		return nil
	}
}

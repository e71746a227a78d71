package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sakif/couple-gallery/internal/apperror"
	"github.com/sakif/couple-gallery/internal/storage"
)

// DefaultMaxUploadBytes is the upload size cap when none is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

// allowedImageTypes is the MIME allow-list for uploads.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadService validates images and hands them to the object store.
type UploadService struct {
	uploader *storage.Uploader
	maxBytes int64
	logger   *slog.Logger
}

func NewUploadService(uploader *storage.Uploader, maxBytes int64, logger *slog.Logger) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadService{uploader: uploader, maxBytes: maxBytes, logger: logger}
}

// MaxBytes is the largest accepted file.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Check validates type and size without touching storage. Handlers call it
// before reading the body so oversized files are rejected early.
func (s *UploadService) Check(contentType string, size int64) error {
	if !allowedImageTypes[normaliseMIME(contentType)] {
		return apperror.ValidationFailed("file", "unsupported file type, only JPG/PNG/GIF/WebP are allowed")
	}
	if size > s.maxBytes {
		return apperror.ValidationFailed("file",
			fmt.Sprintf("file too large, maximum is %d MB", s.maxBytes>>20))
	}
	return nil
}

// Upload stores an image. Storage failures are returned wrapped so the
// handler can surface the backend's message.
func (s *UploadService) Upload(ctx context.Context, body io.Reader, size int64, contentType, filename, folder string) (*storage.Object, error) {
	if err := s.Check(contentType, size); err != nil {
		return nil, err
	}

	obj, err := s.uploader.Upload(ctx, body, size, normaliseMIME(contentType), filename, folder)
	if err != nil {
		s.logger.Error("upload failed",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("image uploaded",
		slog.String("path", obj.Path),
		slog.Int64("size", size),
	)
	return obj, nil
}

// Delete removes an uploaded object by path.
func (s *UploadService) Delete(ctx context.Context, path string) error {
	if storage.NormaliseKey(path) == "" {
		return apperror.MissingFields("name")
	}
	if err := s.uploader.Delete(ctx, path); err != nil {
		s.logger.Error("object delete failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return err
	}
	s.logger.Info("object deleted", slog.String("path", path))
	return nil
}

// normaliseMIME drops parameters ("image/png; charset=x") and case.
func normaliseMIME(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

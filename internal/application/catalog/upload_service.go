package catalog

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/labakery/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ImageStorage stores product images and resolves their public URLs
type ImageStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

// AllowedImageTypes is the whitelist of product image content types.
// SVG is excluded since it can carry scripts.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

const (
	productImagePrefix  = "products/"
	defaultImageExt     = ".png"
	DefaultMaxImageSize = 5 << 20
)

// UploadService stores product images in object storage
type UploadService struct {
	storage ImageStorage
	maxSize int64
	logger  *zap.Logger
	newID   func() uuid.UUID
}

// NewUploadService creates a new UploadService. maxSize <= 0 uses DefaultMaxImageSize.
func NewUploadService(storage ImageStorage, maxSize int64, logger *zap.Logger) *UploadService {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{
		storage: storage,
		maxSize: maxSize,
		logger:  logger,
		newID:   uuid.New,
	}
}

// UploadProductImage stores the image under products/{uuid}{ext} and
// returns its public URL
func (s *UploadService) UploadProductImage(ctx context.Context, in UploadImageInput) (*UploadImageResponse, error) {
	if len(in.Data) == 0 {
		return nil, shared.NewDomainError("INVALID_FILE", "File is empty")
	}
	if int64(len(in.Data)) > s.maxSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the %d MB limit", s.maxSize>>20))
	}

	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(in.Data)
	}
	if !AllowedImageTypes[contentType] {
		return nil, shared.NewDomainError("INVALID_FILE_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed. Allowed types: JPEG, PNG, GIF, WebP", contentType))
	}

	key := s.imageKey(in.Filename)
	if err := s.storage.Upload(ctx, key, in.Data, contentType); err != nil {
		return nil, fmt.Errorf("upload product image: %w", err)
	}

	logger.L(ctx, s.logger).Info("Product image uploaded",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int("size", len(in.Data)),
	)
	return &UploadImageResponse{URL: s.storage.PublicURL(key), Key: key}, nil
}

// imageKey builds products/{uuid}{ext}, keeping the original extension
func (s *UploadService) imageKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || ext == "." {
		ext = defaultImageExt
	}
	return productImagePrefix + s.newID().String() + ext
}

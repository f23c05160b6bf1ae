package storage

import (
	"context"
	"errors"
	"strings"
	"sync"

	catalogapp "github.com/labakery/backend/internal/application/catalog"
)

var _ catalogapp.ImageStorage = (*MemoryImageStorage)(nil)

// MemoryImageStorage keeps uploads in memory. It backs local development
// when no bucket credentials are configured.
type MemoryImageStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryImageStorage creates an empty MemoryImageStorage serving URLs under baseURL
func NewMemoryImageStorage(baseURL string) *MemoryImageStorage {
	if baseURL == "" {
		baseURL = "http://localhost:8080/uploads"
	}
	return &MemoryImageStorage{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string][]byte),
	}
}

// Upload stores a copy of data under key
func (s *MemoryImageStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[key] = buf
	s.mu.Unlock()
	return nil
}

// PublicURL returns BaseURL joined with key
func (s *MemoryImageStorage) PublicURL(key string) string {
	return s.BaseURL + "/" + strings.TrimLeft(key, "/")
}

// Object returns the stored bytes for key
func (s *MemoryImageStorage) Object(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

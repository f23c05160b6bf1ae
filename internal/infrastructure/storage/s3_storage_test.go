package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labakery/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ============================================================================
// Construction
// ============================================================================

func TestNewS3ImageStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ImageStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ImageStorage(&config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3ImageStorage(&config.StorageConfig{Bucket: "b", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3ImageStorage(&config.StorageConfig{Bucket: "b", AccessKey: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})
}

func TestS3ImageStorage_PublicURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.StorageConfig
		expected string
	}{
		{
			name:     "configured public base",
			cfg:      config.StorageConfig{PublicBaseURL: "https://cdn.labakery.cl/"},
			expected: "https://cdn.labakery.cl/products/a.png",
		},
		{
			name:     "path style endpoint",
			cfg:      config.StorageConfig{Endpoint: "localhost:9000", UsePathStyle: true},
			expected: "http://localhost:9000/bakery/products/a.png",
		},
		{
			name:     "virtual host endpoint",
			cfg:      config.StorageConfig{Endpoint: "https://storage.example.com"},
			expected: "https://bakery.storage.example.com/products/a.png",
		},
		{
			name:     "aws default",
			cfg:      config.StorageConfig{Region: "sa-east-1"},
			expected: "https://bakery.s3.sa-east-1.amazonaws.com/products/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Bucket = "bakery"
			cfg.AccessKey = "key"
			cfg.SecretKey = "secret"

			s, err := NewS3ImageStorage(&cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s.PublicURL("products/a.png"))
			assert.Equal(t, "bakery", s.Bucket())
		})
	}
}

// ============================================================================
// Upload against a fake S3 endpoint
// ============================================================================

type recordedRequest struct {
	method      string
	path        string
	contentType string
	acl         string
	body        []byte
}

func newFakeS3(t *testing.T) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			acl:         r.Header.Get("X-Amz-Acl"),
			body:        body,
		})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestS3ImageStorage_Upload(t *testing.T) {
	srv, requests := newFakeS3(t)

	s, err := NewS3ImageStorage(&config.StorageConfig{
		Endpoint:     srv.URL,
		Bucket:       "bakery",
		AccessKey:    "key",
		SecretKey:    "secret",
		UsePathStyle: true,
	}, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	err = s.Upload(context.Background(), "products/cookie.jpg", []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/bakery/products/cookie.jpg", req.path)
	assert.Equal(t, "image/jpeg", req.contentType)
	assert.Equal(t, "public-read", req.acl)
	assert.Equal(t, "jpeg-bytes", string(req.body))
}

func TestS3ImageStorage_Upload_EmptyKey(t *testing.T) {
	s, err := NewS3ImageStorage(&config.StorageConfig{
		Endpoint:  "http://localhost:9000",
		Bucket:    "bakery",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	err = s.Upload(context.Background(), "", []byte("x"), "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key is required")
}

func TestS3ImageStorage_EnsureBucket_Exists(t *testing.T) {
	srv, requests := newFakeS3(t)

	s, err := NewS3ImageStorage(&config.StorageConfig{
		Endpoint:     srv.URL,
		Bucket:       "bakery",
		AccessKey:    "key",
		SecretKey:    "secret",
		UsePathStyle: true,
	})
	require.NoError(t, err)

	require.NoError(t, s.EnsureBucket(context.Background()))
	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodHead, (*requests)[0].method)
}

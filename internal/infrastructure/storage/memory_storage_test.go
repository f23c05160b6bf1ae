package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryImageStorage(t *testing.T) {
	s := NewMemoryImageStorage("http://localhost:8080/uploads/")

	data := []byte("png")
	require.NoError(t, s.Upload(context.Background(), "products/a.png", data, "image/png"))
	data[0] = 'x'

	stored, ok := s.Object("products/a.png")
	require.True(t, ok)
	assert.Equal(t, "png", string(stored))
	assert.Equal(t, "http://localhost:8080/uploads/products/a.png", s.PublicURL("products/a.png"))

	assert.Error(t, s.Upload(context.Background(), "", data, ""))
}

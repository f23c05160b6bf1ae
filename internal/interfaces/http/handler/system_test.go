package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystemHandler(t *testing.T) {
	h := NewSystemHandler("labakery")
	assert.False(t, h.startTime.IsZero())
	assert.Empty(t, h.checks)
}

func TestSystemHandler_Info(t *testing.T) {
	h := NewSystemHandler("labakery")
	c, w := newTestContext()

	h.Info(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SystemInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "labakery", resp.Name)
	assert.NotEmpty(t, resp.GoVersion)
	assert.NotEmpty(t, resp.Uptime)
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		h := NewSystemHandler("labakery")
		h.AddCheck("database", func(context.Context) error { return nil })
		c, w := newTestContext()

		h.Health(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","checks":{"database":"ok"}}`, w.Body.String())
	})

	t.Run("failing check degrades", func(t *testing.T) {
		h := NewSystemHandler("labakery")
		h.AddCheck("database", func(context.Context) error { return nil })
		h.AddCheck("redis", func(context.Context) error { return errors.New("dial tcp: refused") })
		c, w := newTestContext()

		h.Health(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"degraded","checks":{"database":"ok","redis":"dial tcp: refused"}}`, w.Body.String())
	})
}

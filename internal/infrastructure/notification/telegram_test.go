package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labakery/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *TelegramClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewTelegramClient(config.TelegramConfig{
		BotToken:   "123:ABC",
		APIBaseURL: srv.URL + "/",
		Timeout:    time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestNewTelegramClient_RequiresToken(t *testing.T) {
	_, err := NewTelegramClient(config.TelegramConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot token is required")
}

func TestTelegramClient_Send(t *testing.T) {
	var (
		gotPath string
		gotBody sendMessageRequest
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	})

	err := client.Send(context.Background(), "-100200", "Nuevo pedido LB-ABC")
	require.NoError(t, err)

	assert.Equal(t, "/bot123:ABC/sendMessage", gotPath)
	assert.Equal(t, "-100200", gotBody.ChatID)
	assert.Equal(t, "Nuevo pedido LB-ABC", gotBody.Text)
}

func TestTelegramClient_Send_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	})

	err := client.Send(context.Background(), "42", "hola")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTelegramClient_Send_NotOK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false}`))
	})

	err := client.Send(context.Background(), "42", "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 200")
}

func TestTelegramClient_Send_TransportErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client, err := NewTelegramClient(config.TelegramConfig{BotToken: "123:SECRET", APIBaseURL: base})
	require.NoError(t, err)

	err = client.Send(context.Background(), "42", "hola")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET")
}

// Package notification delivers staff notifications through the Telegram Bot API.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	notificationapp "github.com/labakery/backend/internal/application/notification"
	"github.com/labakery/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const maxErrorBody = 4 << 10

var _ notificationapp.Sender = (*TelegramClient)(nil)

// TelegramClient sends messages with the Bot API sendMessage method
type TelegramClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// TelegramOption configures a TelegramClient
type TelegramOption func(*TelegramClient)

// WithLogger sets a custom logger
func WithLogger(logger *zap.Logger) TelegramOption {
	return func(t *TelegramClient) {
		t.logger = logger
	}
}

// NewTelegramClient creates a client for the configured bot
func NewTelegramClient(cfg config.TelegramConfig, opts ...TelegramOption) (*TelegramClient, error) {
	if cfg.BotToken == "" {
		return nil, errors.New("telegram bot token is required")
	}
	baseURL := strings.TrimRight(cfg.APIBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &TelegramClient{
		baseURL:    baseURL,
		token:      cfg.BotToken,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// APIError is a failure reported by the Bot API
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("telegram API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("telegram API returned status %d: %s", e.StatusCode, e.Description)
}

// Send posts text to chatID
func (c *TelegramClient) Send(ctx context.Context, chatID, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("failed to encode telegram message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bot"+c.token+"/sendMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The URL embeds the bot token; keep it out of errors and logs.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var parsed apiResponse
	_ = json.Unmarshal(raw, &parsed)

	if resp.StatusCode != http.StatusOK || !parsed.OK {
		return &APIError{StatusCode: resp.StatusCode, Description: parsed.Description}
	}

	c.logger.Debug("Telegram message sent", zap.String("chat_id", chatID))
	return nil
}

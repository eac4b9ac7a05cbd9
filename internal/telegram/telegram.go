// Package telegram provides a minimal Telegram Bot API client used to deliver
// mod notifications to a chat, optionally inside a group topic.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nexwatch/nexwatch/internal/errors"
)

// DefaultBaseURL is the Telegram Bot API base URL.
const DefaultBaseURL = "https://api.telegram.org"

// Message is a sendMessage request payload.
type Message struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
	// ThreadID targets a group topic (message_thread_id). Empty means the
	// main chat.
	ThreadID string `json:"message_thread_id,omitempty"`
}

// apiResponse is the envelope every Bot API call returns.
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// Client sends messages through a Telegram bot.
type Client struct {
	// HTTPClient is the underlying HTTP client.
	HTTPClient *http.Client
	// BaseURL is the Bot API base URL without trailing slash.
	BaseURL string

	token string
}

// NewClient creates a client for the given bot token.
func NewClient(token string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    DefaultBaseURL,
		token:      token,
	}
}

// SendMessage delivers a message, using HTML parse mode unless the message
// sets one explicitly.
func (c *Client) SendMessage(ctx context.Context, msg Message) error {
	if msg.ParseMode == "" {
		msg.ParseMode = "HTML"
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	u := fmt.Sprintf("%s/bot%s/sendMessage", c.BaseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.NotifyFailed(msg.ChatID, err)
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return errors.NotifyFailed(msg.ChatID, fmt.Errorf("failed to decode response: %w", err))
	}

	if !result.OK {
		return errors.NotifyFailed(msg.ChatID,
			fmt.Errorf("telegram api error %d: %s", result.ErrorCode, result.Description))
	}

	return nil
}

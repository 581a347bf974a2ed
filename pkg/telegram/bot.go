package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL    = "https://api.telegram.org"
	defaultRatePerSec = 25
	defaultBurst      = 5
	defaultTimeout    = 10 * time.Second
)

// Bot is the Telegram Bot API client. It is safe for concurrent use.
type Bot struct {
	token      string
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("%s/bot%s", DefaultBaseURL, token),
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRatePerSec), defaultBurst),
	}
}

// SetAPIURL overrides the full API URL (base plus /bot<token>), mainly for tests.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = strings.TrimRight(url, "/")
}

// SetBaseURL points the client at a Bot API server other than api.telegram.org.
func (b *Bot) SetBaseURL(base string) {
	if base == "" {
		return
	}
	b.apiURL = fmt.Sprintf("%s/bot%s", strings.TrimRight(base, "/"), b.token)
}

// SetRateLimit caps outgoing sendMessage calls. Telegram allows roughly 30 per second per bot.
func (b *Bot) SetRateLimit(perSec float64, burst int) {
	if perSec <= 0 {
		return
	}
	if burst <= 0 {
		burst = 1
	}
	b.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
}

// SetTimeout sets the per-request HTTP timeout.
func (b *Bot) SetTimeout(d time.Duration) {
	if d > 0 {
		b.httpClient.Timeout = d
	}
}

// SendMessage sends a plain text message to a chat. chatID is a numeric id
// ("-1001234567890") or a public channel username ("@channel").
// Text is sent without a parse mode so commit messages are never interpreted as markup.
func (b *Bot) SendMessage(ctx context.Context, chatID string, text string) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/sendMessage", b.apiURL)
	payload := SendMessageRequest{
		ChatID: chatID,
		Text:   text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage API error %d: %s", resp.StatusCode, string(raw))
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return fmt.Errorf("failed to decode sendMessage response: %w", err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram sendMessage failed: %s", apiResp.Description)
	}

	return nil
}

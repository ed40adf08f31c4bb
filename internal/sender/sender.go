// Package sender pushes outbound text messages back to the messaging
// platform's send API.
package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Config holds send API settings.
type Config struct {
	// BaseURL is the Graph API base, e.g. "https://graph.facebook.com/v18.0".
	BaseURL string

	// AccessToken is the bearer credential.
	AccessToken string

	// PhoneNumberID identifies the business phone number messages are sent
	// from.
	PhoneNumberID string

	// Timeout bounds each send call. Zero means 30s.
	Timeout time.Duration
}

// Sender delivers text replies to customers.
type Sender struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// New creates a Sender.
func New(cfg Config, logger *slog.Logger) *Sender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Sender{
		cfg:    cfg,
		http:   &http.Client{},
		logger: logger,
	}
}

type textPayload struct {
	MessagingProduct string       `json:"messaging_product"`
	RecipientType    string       `json:"recipient_type"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             textBody     `json:"text"`
	Context          *replyTarget `json:"context,omitempty"`
}

type textBody struct {
	Body string `json:"body"`
}

type replyTarget struct {
	MessageID string `json:"message_id"`
}

// SendText delivers a text message to the given phone number. When
// contextMessageID is non-empty the message is threaded as a reply to that
// inbound message.
func (s *Sender) SendText(ctx context.Context, to, text, contextMessageID string) error {
	if s.cfg.PhoneNumberID == "" {
		return fmt.Errorf("no phone number id configured")
	}

	payload := textPayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             textBody{Body: text},
	}
	if contextMessageID != "" {
		payload.Context = &replyTarget{MessageID: contextMessageID}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal send payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	url := s.cfg.BaseURL + "/" + s.cfg.PhoneNumberID + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.AccessToken)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send message: status %d: %s", resp.StatusCode, detail)
	}

	s.logger.Info("outbound message sent", "to", to, "bytes", len(text))
	return nil
}

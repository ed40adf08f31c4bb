package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ChatConfig holds conversational API settings.
type ChatConfig struct {
	BaseURL        string
	AccessToken    string
	ConversationID string

	// Timeout bounds each relay call. Zero means 30s.
	Timeout time.Duration
}

// ChatClient relays user text to the conversational endpoint.
type ChatClient struct {
	cfg    ChatConfig
	http   *http.Client
	logger *slog.Logger
}

// NewChatClient creates a chat relay client.
func NewChatClient(cfg ChatConfig, logger *slog.Logger) *ChatClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ChatClient{
		cfg:    cfg,
		http:   &http.Client{},
		logger: logger,
	}
}

// chatRequest is the wire request to POST {base}/message.
type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

// nativeReply absorbs the provider-specific response. Different downstreams
// name the reply text and id differently; normalization below owns mapping
// them into a Reply with every field populated.
type nativeReply struct {
	BotReply string `json:"bot_reply"`
	Response string `json:"response"`
	Message  *struct {
		ID      int    `json:"id"`
		Content string `json:"content"`
	} `json:"message"`
	MessageID          int      `json:"message_id"`
	End                *bool    `json:"end"`
	EndReason          *string  `json:"end_reason"`
	TimeTaken          *float64 `json:"time_taken"`
	ShouldConnectAgent *bool    `json:"should_connect_agent"`
}

// Relay sends userInput to the conversational endpoint and returns the
// normalized reply. conversationID overrides the configured conversation
// when non-empty.
func (c *ChatClient) Relay(ctx context.Context, userInput, conversationID string) (Reply, error) {
	if conversationID == "" {
		conversationID = c.cfg.ConversationID
	}

	body, err := json.Marshal(chatRequest{
		Message:        userInput,
		ConversationID: conversationID,
	})
	if err != nil {
		return Reply{}, fmt.Errorf("marshal chat request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/message", bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("chat request: %v: %w", err, ErrUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Reply{}, fmt.Errorf("chat request: status %d: %w", resp.StatusCode, ErrUnreachable)
	}

	var native nativeReply
	if err := json.NewDecoder(resp.Body).Decode(&native); err != nil {
		return Reply{}, fmt.Errorf("decode chat response: %v: %w", err, ErrUnreachable)
	}

	reply := normalize(native, time.Since(start))

	c.logger.Info("chat relay completed",
		"conversation_id", conversationID,
		"message_id", reply.MessageID,
		"end", reply.End,
		"time_taken", reply.TimeTaken,
	)

	return reply, nil
}

// Probe checks connectivity to the conversational API without sending a
// message.
func (c *ChatClient) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}
	if c.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("chat probe: %v: %w", err, ErrUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("chat probe: status %d: %w", resp.StatusCode, ErrUnreachable)
	}
	return nil
}

// normalize maps whichever fields the provider supplied into a fully
// populated Reply.
func normalize(native nativeReply, elapsed time.Duration) Reply {
	reply := Reply{
		BotReply:  native.BotReply,
		MessageID: native.MessageID,
		TimeTaken: elapsed.Seconds(),
	}

	if reply.BotReply == "" {
		reply.BotReply = native.Response
	}
	if native.Message != nil {
		if reply.BotReply == "" {
			reply.BotReply = native.Message.Content
		}
		if reply.MessageID == 0 {
			reply.MessageID = native.Message.ID
		}
	}

	if native.End != nil {
		reply.End = *native.End
	}
	reply.EndReason = native.EndReason
	if native.TimeTaken != nil {
		reply.TimeTaken = *native.TimeTaken
	}
	if native.ShouldConnectAgent != nil {
		reply.ShouldConnectAgent = *native.ShouldConnectAgent
	}

	return reply
}

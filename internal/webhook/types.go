package webhook

//go:generate mockgen -source=types.go -destination=mocks/mock_webhook.go -package=mocks

import (
	"context"

	"github.com/mattjoyce/wabridge/internal/envelope"
	"github.com/mattjoyce/wabridge/internal/relay"
)

// DefaultMaxBodySize limits webhook request bodies to 1MB unless configured
// otherwise.
const DefaultMaxBodySize = 1048576

// DefaultSignatureHeader is where the platform carries the body signature.
const DefaultSignatureHeader = "X-Hub-Signature-256"

// DeliveryHandler processes a verified, parsed delivery. It returns the number
// of messages it handled and blocks until every message pipeline has finished,
// so the HTTP acknowledgment covers completed work.
type DeliveryHandler interface {
	HandleDelivery(ctx context.Context, delivery envelope.Delivery) (int, error)
}

// Prober checks reachability of a downstream service.
type Prober interface {
	Probe(ctx context.Context) error
}

// StatusReporter exposes pipeline counters for the status endpoint.
type StatusReporter interface {
	Snapshot() map[string]int64
}

// Config holds webhook server settings.
type Config struct {
	// Listen is the address to bind, e.g. "127.0.0.1:8080".
	Listen string

	// VerifyToken answers the platform's subscription handshake.
	VerifyToken string

	// AppSecret is the HMAC-SHA256 key for body signatures.
	AppSecret string

	// SignatureHeader overrides the default signature header name.
	SignatureHeader string

	// MaxBodySize caps webhook bodies in bytes. Zero means DefaultMaxBodySize.
	MaxBodySize int64

	// AuthToken protects the events and status endpoints. Empty disables them.
	AuthToken string
}

// AckResponse is the fixed delivery acknowledgment. The platform only needs
// a timely 2xx; the body never varies with the number of messages processed.
type AckResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the generic JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// EchoRequest is the body of the local echo test endpoint.
type EchoRequest struct {
	Message string `json:"message"`
}

// EchoResponse wraps the deterministic echo reply so callers can validate the
// normalized reply contract offline.
type EchoResponse struct {
	Status          string      `json:"status"`
	UserInput       string      `json:"user_input"`
	BotReply        string      `json:"bot_reply"`
	ResponseDetails relay.Reply `json:"response_details"`
}

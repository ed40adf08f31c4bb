// Package relay forwards extracted text to downstream HTTP services (a
// conversational chatbot API and a document-processing API) and normalizes
// their heterogeneous responses into one fixed reply shape.
package relay

import "errors"

// ErrUnreachable indicates a downstream call failed at the network level or
// returned a non-2xx status. The caller decides whether to surface it or
// answer with a generic acknowledgment.
var ErrUnreachable = errors.New("downstream unreachable")

// Reply is the normalized downstream response. All fields are always
// populated (defaulted when the provider omits them) so callers never observe
// a partial structure. EndReason stays nil when the conversation is open.
type Reply struct {
	BotReply           string  `json:"bot_reply"`
	MessageID          int     `json:"message_id"`
	End                bool    `json:"end"`
	EndReason          *string `json:"end_reason"`
	TimeTaken          float64 `json:"time_taken"`
	ShouldConnectAgent bool    `json:"should_connect_agent"`
}

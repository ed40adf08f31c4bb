package webhook

import (
	"crypto/subtle"
	"fmt"
	"net/url"
)

// validateHandshake checks a subscription handshake query against the
// configured verify token and returns the challenge to echo back. The token
// comparison is constant-time; any failure yields the same generic error.
func validateHandshake(query url.Values, verifyToken string) (string, error) {
	if verifyToken == "" {
		return "", fmt.Errorf("handshake rejected")
	}

	if query.Get("hub.mode") != "subscribe" {
		return "", fmt.Errorf("handshake rejected")
	}

	provided := query.Get("hub.verify_token")
	if len(provided) != len(verifyToken) ||
		subtle.ConstantTimeCompare([]byte(provided), []byte(verifyToken)) != 1 {
		return "", fmt.Errorf("handshake rejected")
	}

	return query.Get("hub.challenge"), nil
}

// Package webhook implements the inbound HTTP surface for WhatsApp Business
// webhook deliveries with HMAC-SHA256 verification.
//
// # Security Model
//
// - HMAC-SHA256 signatures verified using crypto/subtle (constant-time comparison)
// - Signature checked over the raw body before any parsing happens
// - Body size limits enforced to prevent DoS attacks
// - No signature details leaked in error responses (always generic 403)
// - Request logging excludes sensitive payloads
// - Secrets loaded from environment variables (never hardcoded)
//
// # Request Flow
//
//  1. HTTP POST arrives at /webhook
//  2. Body size checked (reject with 413 if too large)
//  3. Signature header extracted (X-Hub-Signature-256)
//  4. HMAC-SHA256 computed over the raw request body
//  5. Constant-time comparison of signatures (reject with 403 if mismatch)
//  6. Envelope parsed and handed to the dispatcher
//  7. 200 returned once every message pipeline has finished
//
// The GET /webhook route answers the platform's subscription handshake:
// hub.mode must be "subscribe" and hub.verify_token must match the configured
// token, in which case hub.challenge is echoed back verbatim.
//
// # Error Responses
//
// - 403 Forbidden: invalid or missing signature, failed handshake
// - 400 Bad Request: malformed JSON or unrecognized envelope object
// - 413 Payload Too Large: body exceeds max_body_size
package webhook

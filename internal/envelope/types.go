// Package envelope models the WhatsApp Business webhook delivery payload and
// extracts normalized messages from it.
//
// The platform sends a deeply nested, loosely-typed envelope:
//
//	Delivery -> Entry[] -> Change[] -> Value{ messages[], contacts[], statuses[] }
//
// Extraction flattens this into one ExtractedMessage per inbound message,
// classified by a closed set of types with an explicit unsupported fallback.
package envelope

// ObjectWhatsAppBusinessAccount is the only accepted top-level discriminator.
// Deliveries carrying any other object value are rejected before extraction.
const ObjectWhatsAppBusinessAccount = "whatsapp_business_account"

// FieldMessages is the change field carrying inbound messages.
const FieldMessages = "messages"

// Delivery is the top-level webhook payload.
type Delivery struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry represents one business account entry.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change wraps a single change notification.
type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

// Value holds the message data for a change.
type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Metadata         Metadata  `json:"metadata"`
	Contacts         []Contact `json:"contacts,omitempty"`
	Messages         []Message `json:"messages,omitempty"`
	Statuses         []Status  `json:"statuses,omitempty"`
}

// Metadata describes the receiving phone number.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// Contact is a WhatsApp contact profile attached to a delivery.
type Contact struct {
	Profile ContactProfile `json:"profile"`
	WaID    string         `json:"wa_id"`
}

// ContactProfile carries the customer display name.
type ContactProfile struct {
	Name string `json:"name"`
}

// Message is one inbound message. Exactly one of the content fields is
// populated, selected by Type; unknown future types leave them all nil.
type Message struct {
	From      string        `json:"from"`
	ID        string        `json:"id"`
	Timestamp string        `json:"timestamp"`
	Type      string        `json:"type"`
	Text      *TextContent  `json:"text,omitempty"`
	Image     *MediaContent `json:"image,omitempty"`
	Video     *MediaContent `json:"video,omitempty"`
	Audio     *MediaContent `json:"audio,omitempty"`
	Document  *MediaContent `json:"document,omitempty"`
	Sticker   *MediaContent `json:"sticker,omitempty"`
}

// TextContent holds a text message body.
type TextContent struct {
	Body string `json:"body"`
}

// MediaContent is a media attachment reference. The ID requires a two-step
// lookup against the Graph API to obtain actual bytes.
type MediaContent struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type,omitempty"`
	SHA256   string `json:"sha256,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// Status is a message delivery status update (sent/delivered/read receipts).
// Status-only deliveries carry no messages and are acknowledged silently.
type Status struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	RecipientID string `json:"recipient_id"`
}

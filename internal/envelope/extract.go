package envelope

import (
	"strconv"
	"time"
)

// Type classifies an extracted message.
type Type string

const (
	TypeText        Type = "text"
	TypeImage       Type = "image"
	TypeVideo       Type = "video"
	TypeUnsupported Type = "unsupported"
)

// MediaRef references a media attachment on an extracted message.
type MediaRef struct {
	ID       string
	Caption  string
	MimeType string
	SHA256   string
	FileSize int64
}

// Customer identifies the sender, extracted from the delivery's contacts.
// Valid only within the delivery it came from; no cross-request identity
// resolution happens here.
type Customer struct {
	WaID        string
	DisplayName string
	Phone       string
}

// ExtractedMessage is the normalized output of extraction: exactly one per
// inbound message, whatever its type. Held only for the duration of request
// handling.
type ExtractedMessage struct {
	SenderID  string
	MessageID string
	Timestamp string
	Type      Type
	TextBody  string    // present iff Type == TypeText
	Media     *MediaRef // present iff Type is TypeImage or TypeVideo
	Customer  *Customer // nil when the delivery carried no matching contact
}

// Time converts the platform's epoch-seconds timestamp to absolute time.
// Returns the zero time for a missing or malformed timestamp.
func (m *ExtractedMessage) Time() time.Time {
	secs, err := strconv.ParseInt(m.Timestamp, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0).UTC()
}

// Extract flattens a change value into normalized messages. It is total:
// every message yields exactly one ExtractedMessage, with unrecognized types
// classified TypeUnsupported rather than failing. A value with no messages
// (status-only deliveries) yields an empty slice.
func Extract(v Value) []ExtractedMessage {
	if len(v.Messages) == 0 {
		return nil
	}

	out := make([]ExtractedMessage, 0, len(v.Messages))
	for i, msg := range v.Messages {
		em := ExtractedMessage{
			SenderID:  msg.From,
			MessageID: msg.ID,
			Timestamp: msg.Timestamp,
			Customer:  customerAt(v.Contacts, i),
		}

		switch msg.Type {
		case "text":
			em.Type = TypeText
			if msg.Text != nil {
				em.TextBody = msg.Text.Body
			}
		case "image":
			em.Type = TypeImage
			em.Media = mediaRef(msg.Image)
		case "video":
			em.Type = TypeVideo
			em.Media = mediaRef(msg.Video)
		default:
			// audio, document, location, reactions, future types: normal,
			// expected traffic that this gateway does not process.
			em.Type = TypeUnsupported
		}

		out = append(out, em)
	}
	return out
}

// customerAt pairs a message with the contact at the same index. The platform
// correlates contacts and messages by position, not by identifier; when the
// contacts list is shorter we fall back to the first contact, and a delivery
// with no contacts yields a nil Customer rather than failing.
func customerAt(contacts []Contact, i int) *Customer {
	if len(contacts) == 0 {
		return nil
	}
	c := contacts[0]
	if i < len(contacts) {
		c = contacts[i]
	}
	return &Customer{
		WaID:        c.WaID,
		DisplayName: c.Profile.Name,
		Phone:       phoneFromWaID(c.WaID),
	}
}

// phoneFromWaID derives a dialable number from the platform identifier.
// wa_id is the E.164 number without the plus sign.
func phoneFromWaID(waID string) string {
	if waID == "" {
		return ""
	}
	return "+" + waID
}

func mediaRef(mc *MediaContent) *MediaRef {
	if mc == nil {
		return nil
	}
	return &MediaRef{
		ID:       mc.ID,
		Caption:  mc.Caption,
		MimeType: mc.MimeType,
		SHA256:   mc.SHA256,
		FileSize: mc.FileSize,
	}
}

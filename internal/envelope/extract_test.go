package envelope

import (
	"encoding/json"
	"testing"
	"time"
)

func textMessage(id, from, body string) Message {
	return Message{
		From:      from,
		ID:        id,
		Timestamp: "1700000000",
		Type:      "text",
		Text:      &TextContent{Body: body},
	}
}

func TestExtract_Text(t *testing.T) {
	v := Value{
		Contacts: []Contact{{Profile: ContactProfile{Name: "Ada"}, WaID: "61400000001"}},
		Messages: []Message{textMessage("wamid.1", "61400000001", "hello")},
	}

	got := Extract(v)
	if len(got) != 1 {
		t.Fatalf("extracted %d messages, want 1", len(got))
	}

	m := got[0]
	if m.Type != TypeText {
		t.Errorf("Type = %v, want %v", m.Type, TypeText)
	}
	if m.TextBody != "hello" {
		t.Errorf("TextBody = %q, want %q", m.TextBody, "hello")
	}
	if m.Media != nil {
		t.Error("Media should be nil for text messages")
	}
	if m.Customer == nil {
		t.Fatal("Customer should be populated")
	}
	if m.Customer.DisplayName != "Ada" {
		t.Errorf("DisplayName = %q, want Ada", m.Customer.DisplayName)
	}
	if m.Customer.Phone != "+61400000001" {
		t.Errorf("Phone = %q, want +61400000001", m.Customer.Phone)
	}
}

func TestExtract_MediaTypes(t *testing.T) {
	tests := []struct {
		name     string
		msg      Message
		wantType Type
		wantRef  bool
	}{
		{
			name: "image",
			msg: Message{
				From: "614", ID: "wamid.img", Timestamp: "1700000000", Type: "image",
				Image: &MediaContent{ID: "media-1", MimeType: "image/jpeg", Caption: "pic"},
			},
			wantType: TypeImage,
			wantRef:  true,
		},
		{
			name: "video",
			msg: Message{
				From: "614", ID: "wamid.vid", Timestamp: "1700000000", Type: "video",
				Video: &MediaContent{ID: "media-2", MimeType: "video/mp4"},
			},
			wantType: TypeVideo,
			wantRef:  true,
		},
		{
			name: "audio is unsupported",
			msg: Message{
				From: "614", ID: "wamid.aud", Timestamp: "1700000000", Type: "audio",
				Audio: &MediaContent{ID: "media-3", MimeType: "audio/ogg"},
			},
			wantType: TypeUnsupported,
		},
		{
			name: "document is unsupported",
			msg: Message{
				From: "614", ID: "wamid.doc", Timestamp: "1700000000", Type: "document",
				Document: &MediaContent{ID: "media-4", MimeType: "application/pdf"},
			},
			wantType: TypeUnsupported,
		},
		{
			name: "sticker is unsupported",
			msg: Message{
				From: "614", ID: "wamid.stk", Timestamp: "1700000000", Type: "sticker",
				Sticker: &MediaContent{ID: "media-5", MimeType: "image/webp"},
			},
			wantType: TypeUnsupported,
		},
		{
			name:     "unknown future type",
			msg:      Message{From: "614", ID: "wamid.x", Timestamp: "1700000000", Type: "reaction"},
			wantType: TypeUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(Value{Messages: []Message{tt.msg}})
			if len(got) != 1 {
				t.Fatalf("extracted %d messages, want 1", len(got))
			}
			if got[0].Type != tt.wantType {
				t.Errorf("Type = %v, want %v", got[0].Type, tt.wantType)
			}
			if tt.wantRef {
				if got[0].Media == nil {
					t.Fatal("Media should be populated")
				}
				if got[0].Media.ID == "" {
					t.Error("Media.ID is empty")
				}
			}
		})
	}
}

func TestExtract_ContactPairing(t *testing.T) {
	v := Value{
		Contacts: []Contact{
			{Profile: ContactProfile{Name: "Ada"}, WaID: "111"},
			{Profile: ContactProfile{Name: "Ben"}, WaID: "222"},
		},
		Messages: []Message{
			textMessage("wamid.1", "111", "first"),
			textMessage("wamid.2", "222", "second"),
			textMessage("wamid.3", "333", "third"), // no contact at index 2
		},
	}

	got := Extract(v)
	if len(got) != 3 {
		t.Fatalf("extracted %d messages, want 3", len(got))
	}

	if got[0].Customer.DisplayName != "Ada" {
		t.Errorf("message 0 paired with %q, want Ada", got[0].Customer.DisplayName)
	}
	if got[1].Customer.DisplayName != "Ben" {
		t.Errorf("message 1 paired with %q, want Ben", got[1].Customer.DisplayName)
	}
	// Shorter contacts list falls back to the first contact.
	if got[2].Customer == nil || got[2].Customer.DisplayName != "Ada" {
		t.Errorf("message 2 should fall back to first contact, got %+v", got[2].Customer)
	}
}

func TestExtract_NoContacts(t *testing.T) {
	got := Extract(Value{Messages: []Message{textMessage("wamid.1", "614", "hi")}})
	if len(got) != 1 {
		t.Fatalf("extracted %d messages, want 1", len(got))
	}
	if got[0].Customer != nil {
		t.Errorf("Customer = %+v, want nil", got[0].Customer)
	}
}

func TestExtract_StatusOnlyDelivery(t *testing.T) {
	v := Value{
		Statuses: []Status{{ID: "wamid.1", Status: "delivered", Timestamp: "1700000000"}},
	}
	if got := Extract(v); len(got) != 0 {
		t.Errorf("extracted %d messages from status-only value, want 0", len(got))
	}
}

func TestExtractedMessage_Time(t *testing.T) {
	m := ExtractedMessage{Timestamp: "1700000000"}
	want := time.Unix(1700000000, 0).UTC()
	if got := m.Time(); !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}

	m = ExtractedMessage{Timestamp: "not-a-number"}
	if got := m.Time(); !got.IsZero() {
		t.Errorf("Time() = %v, want zero time", got)
	}
}

func TestDelivery_UnmarshalRealPayload(t *testing.T) {
	payload := `{
	  "object": "whatsapp_business_account",
	  "entry": [{
	    "id": "123",
	    "changes": [{
	      "field": "messages",
	      "value": {
	        "messaging_product": "whatsapp",
	        "metadata": {"display_phone_number": "61400000000", "phone_number_id": "pnid"},
	        "contacts": [{"profile": {"name": "Ada"}, "wa_id": "61400000001"}],
	        "messages": [{
	          "from": "61400000001",
	          "id": "wamid.abc",
	          "timestamp": "1700000000",
	          "type": "image",
	          "image": {"id": "media-9", "mime_type": "image/png", "sha256": "deadbeef", "file_size": 2048}
	        }]
	      }
	    }]
	  }]
	}`

	var d Delivery
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Object != ObjectWhatsAppBusinessAccount {
		t.Errorf("Object = %q", d.Object)
	}

	msgs := Extract(d.Entry[0].Changes[0].Value)
	if len(msgs) != 1 {
		t.Fatalf("extracted %d messages, want 1", len(msgs))
	}
	if msgs[0].Type != TypeImage {
		t.Errorf("Type = %v, want image", msgs[0].Type)
	}
	if msgs[0].Media.FileSize != 2048 {
		t.Errorf("FileSize = %d, want 2048", msgs[0].Media.FileSize)
	}
}

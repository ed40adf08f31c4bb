package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSendText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pnid-1/messages" {
			t.Errorf("path = %s, want /pnid-1/messages", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["messaging_product"] != "whatsapp" {
			t.Errorf("messaging_product = %v", payload["messaging_product"])
		}
		if payload["to"] != "61400000001" {
			t.Errorf("to = %v", payload["to"])
		}
		text := payload["text"].(map[string]any)
		if text["body"] != "hello back" {
			t.Errorf("body = %v", text["body"])
		}
		ctxField := payload["context"].(map[string]any)
		if ctxField["message_id"] != "wamid.inbound" {
			t.Errorf("context.message_id = %v", ctxField["message_id"])
		}

		fmt.Fprint(w, `{"messages":[{"id":"wamid.outbound"}]}`)
	}))
	defer srv.Close()

	s := New(Config{
		BaseURL:       srv.URL,
		AccessToken:   "test-token",
		PhoneNumberID: "pnid-1",
	}, testLogger())

	err := s.SendText(context.Background(), "61400000001", "hello back", "wamid.inbound")
	if err != nil {
		t.Fatalf("SendText() error = %v", err)
	}
}

func TestSendText_NoContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if _, ok := payload["context"]; ok {
			t.Error("context should be omitted when no inbound message id given")
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL, AccessToken: "t", PhoneNumberID: "p"}, testLogger())

	if err := s.SendText(context.Background(), "614", "hi", ""); err != nil {
		t.Fatalf("SendText() error = %v", err)
	}
}

func TestSendText_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid token"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL, AccessToken: "bad", PhoneNumberID: "p"}, testLogger())

	if err := s.SendText(context.Background(), "614", "hi", ""); err == nil {
		t.Fatal("SendText() should fail on non-2xx")
	}
}

func TestSendText_NoPhoneNumberID(t *testing.T) {
	s := New(Config{BaseURL: "http://127.0.0.1:0", AccessToken: "t"}, testLogger())

	if err := s.SendText(context.Background(), "614", "hi", ""); err == nil {
		t.Fatal("SendText() should fail without phone number id")
	}
}

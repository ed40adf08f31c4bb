package relay

import (
	"context"
	"encoding/json"
	"errors"
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

func TestRelay_NormalizesFullResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/message" {
			t.Errorf("path = %s, want /message", r.URL.Path)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["message"] != "hello" {
			t.Errorf("message = %q, want hello", req["message"])
		}
		if req["conversation_id"] != "conv-42" {
			t.Errorf("conversation_id = %q, want conv-42", req["conversation_id"])
		}

		fmt.Fprint(w, `{
			"bot_reply": "Hi there",
			"message_id": 17,
			"end": true,
			"end_reason": "resolved",
			"time_taken": 1.25,
			"should_connect_agent": true
		}`)
	}))
	defer srv.Close()

	client := NewChatClient(ChatConfig{BaseURL: srv.URL}, testLogger())

	reply, err := client.Relay(context.Background(), "hello", "conv-42")
	if err != nil {
		t.Fatalf("Relay() error = %v", err)
	}

	if reply.BotReply != "Hi there" {
		t.Errorf("BotReply = %q", reply.BotReply)
	}
	if reply.MessageID != 17 {
		t.Errorf("MessageID = %d, want 17", reply.MessageID)
	}
	if !reply.End {
		t.Error("End = false, want true")
	}
	if reply.EndReason == nil || *reply.EndReason != "resolved" {
		t.Errorf("EndReason = %v, want resolved", reply.EndReason)
	}
	if reply.TimeTaken != 1.25 {
		t.Errorf("TimeTaken = %v, want 1.25", reply.TimeTaken)
	}
	if !reply.ShouldConnectAgent {
		t.Error("ShouldConnectAgent = false, want true")
	}
}

func TestRelay_NormalizesSparseResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Alternate provider shape: text under response, id nested.
		fmt.Fprint(w, `{"response": "Nested reply", "message": {"id": 9, "content": "ignored"}}`)
	}))
	defer srv.Close()

	client := NewChatClient(ChatConfig{BaseURL: srv.URL, ConversationID: "default-conv"}, testLogger())

	reply, err := client.Relay(context.Background(), "hi", "")
	if err != nil {
		t.Fatalf("Relay() error = %v", err)
	}

	// Every field must be populated even when the provider omits it.
	if reply.BotReply != "Nested reply" {
		t.Errorf("BotReply = %q", reply.BotReply)
	}
	if reply.MessageID != 9 {
		t.Errorf("MessageID = %d, want 9", reply.MessageID)
	}
	if reply.End {
		t.Error("End should default to false")
	}
	if reply.EndReason != nil {
		t.Errorf("EndReason = %v, want nil", reply.EndReason)
	}
	if reply.TimeTaken <= 0 {
		t.Errorf("TimeTaken = %v, want measured elapsed time", reply.TimeTaken)
	}
	if reply.ShouldConnectAgent {
		t.Error("ShouldConnectAgent should default to false")
	}
}

func TestRelay_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewChatClient(ChatConfig{BaseURL: srv.URL}, testLogger())

	_, err := client.Relay(context.Background(), "hi", "")
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("error = %v, want ErrUnreachable", err)
	}
}

func TestRelay_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewChatClient(ChatConfig{BaseURL: srv.URL}, testLogger())

	_, err := client.Relay(context.Background(), "hi", "")
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("error = %v, want ErrUnreachable", err)
	}
}

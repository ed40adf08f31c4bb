package dispatch

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_dispatch.go -package=mocks

import (
	"context"

	"github.com/mattjoyce/wabridge/internal/media"
	"github.com/mattjoyce/wabridge/internal/relay"
	"github.com/mattjoyce/wabridge/internal/storage"
)

// MediaFetcher resolves a media id to bytes via the platform's two-step
// lookup.
type MediaFetcher interface {
	Fetch(ctx context.Context, mediaID string) (*media.Asset, error)
}

// MediaSaver persists a fetched asset and returns its stored path.
type MediaSaver interface {
	Save(asset *media.Asset, phone, msgType string) (string, error)
}

// ChatRelay forwards user text downstream and returns the normalized reply.
type ChatRelay interface {
	Relay(ctx context.Context, userInput, conversationID string) (relay.Reply, error)
}

// ReplySender delivers outbound text back to the customer.
type ReplySender interface {
	SendText(ctx context.Context, to, text, contextMessageID string) error
}

// DocumentForwarder hands business documents to the processing API.
type DocumentForwarder interface {
	Upload(ctx context.Context, filename, mimeType string, data []byte) (int, error)
	Process(ctx context.Context, documentID int) error
}

// MessageRecorder appends processed messages to the persistent log.
type MessageRecorder interface {
	Record(ctx context.Context, rec storage.MessageRecord) error
}

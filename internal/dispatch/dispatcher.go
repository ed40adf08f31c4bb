// Package dispatch coordinates the processing pipeline for verified webhook
// deliveries: extraction, deduplication, media retrieval, downstream relay
// and the outbound reply.
package dispatch

import (
	"context"
	"encoding/hex"
	"log/slog"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/mattjoyce/wabridge/internal/dedupe"
	"github.com/mattjoyce/wabridge/internal/envelope"
	"github.com/mattjoyce/wabridge/internal/events"
	"github.com/mattjoyce/wabridge/internal/media"
	"github.com/mattjoyce/wabridge/internal/storage"
)

// Customer-facing fallback texts.
const (
	replyUnsupported = "Sorry, I can't process this type of message yet. Please send text, an image, a video or a document."
	replyMediaFailed = "Sorry, I couldn't retrieve your file. Please try sending it again."
	replyMediaStored = "Thanks, I've received your file."
	replyRelayDown   = "Sorry, I'm having trouble answering right now. Please try again in a moment."
)

// Dispatcher runs one concurrent pipeline per extracted message and joins
// them before the delivery is acknowledged.
type Dispatcher struct {
	fetcher  MediaFetcher
	store    MediaSaver
	chat     ChatRelay
	sender   ReplySender
	docs     DocumentForwarder
	recorder MessageRecorder
	dedup    *dedupe.Deduplicator
	hub      *events.Hub
	stats    *Stats
	logger   *slog.Logger
}

// Options carries the dispatcher's collaborators. Sender, docs, recorder and
// hub are optional; the pipeline degrades to logging when they are absent.
type Options struct {
	Fetcher  MediaFetcher
	Store    MediaSaver
	Chat     ChatRelay
	Sender   ReplySender
	Docs     DocumentForwarder
	Recorder MessageRecorder
	Dedup    *dedupe.Deduplicator
	Hub      *events.Hub
	Stats    *Stats
	Logger   *slog.Logger
}

// New creates a Dispatcher.
func New(opts Options) *Dispatcher {
	if opts.Stats == nil {
		opts.Stats = NewStats()
	}
	if opts.Dedup == nil {
		opts.Dedup = dedupe.New(0)
	}
	return &Dispatcher{
		fetcher:  opts.Fetcher,
		store:    opts.Store,
		chat:     opts.Chat,
		sender:   opts.Sender,
		docs:     opts.Docs,
		recorder: opts.Recorder,
		dedup:    opts.Dedup,
		hub:      opts.Hub,
		stats:    opts.Stats,
		logger:   opts.Logger,
	}
}

// Stats exposes the dispatcher's counters.
func (d *Dispatcher) Stats() *Stats {
	return d.stats
}

// HandleDelivery extracts every message in the delivery and processes each in
// its own goroutine. It returns once all pipelines have finished; a failure
// in one message never aborts its siblings.
func (d *Dispatcher) HandleDelivery(ctx context.Context, delivery envelope.Delivery) (int, error) {
	d.stats.Inc(CounterDeliveries)
	d.publish(events.TypeDeliveryReceived, map[string]int{"entries": len(delivery.Entry)})

	var wg sync.WaitGroup
	handled := 0

	for _, entry := range delivery.Entry {
		for _, change := range entry.Changes {
			if change.Field != envelope.FieldMessages {
				continue
			}
			// Extraction yields one message per envelope entry in order, so
			// the raw document reference pairs with its message by index.
			for i, msg := range envelope.Extract(change.Value) {
				handled++
				wg.Add(1)
				go func(m envelope.ExtractedMessage, doc *envelope.MediaContent) {
					defer wg.Done()
					d.processMessage(ctx, m, doc)
				}(msg, change.Value.Messages[i].Document)
			}
		}
	}

	wg.Wait()
	return handled, nil
}

// processMessage runs the full pipeline for one message. doc carries the raw
// envelope attachment for document-type messages, which sit outside the
// extraction enum but still get a retrieval path. Errors are absorbed here:
// they are logged, counted and published, never returned.
func (d *Dispatcher) processMessage(ctx context.Context, msg envelope.ExtractedMessage, doc *envelope.MediaContent) {
	logger := d.logger.With("message_id", msg.MessageID, "sender", msg.SenderID, "type", string(msg.Type))

	key := dedupe.Key(msg.MessageID, msg.SenderID, msg.Timestamp, string(msg.Type))
	if d.dedup.Seen(key) {
		d.stats.Inc(CounterDuplicates)
		d.publish(events.TypeMessageDuplicate, map[string]string{"message_id": msg.MessageID})
		logger.Info("duplicate message suppressed")
		return
	}

	d.stats.Inc(CounterMessages)
	d.publish(events.TypeMessageExtracted, map[string]string{
		"message_id": msg.MessageID,
		"type":       string(msg.Type),
	})

	rec := storage.MessageRecord{
		ID:      msg.MessageID,
		Sender:  msg.SenderID,
		Type:    string(msg.Type),
		Content: msg.TextBody,
	}
	if msg.Customer != nil {
		rec.WaID = msg.Customer.WaID
		rec.DisplayName = msg.Customer.DisplayName
	}

	switch msg.Type {
	case envelope.TypeText:
		d.handleText(ctx, msg, logger)
	case envelope.TypeImage, envelope.TypeVideo:
		if msg.Media == nil || d.fetcher == nil {
			d.stats.Inc(CounterMediaFailed)
			logger.Warn("media message without retrievable reference")
			break
		}
		d.handleMedia(ctx, msg, msg.Media.ID, "", string(msg.Type), &rec, logger)
	default:
		if doc != nil && d.fetcher != nil {
			rec.Type = "document"
			d.handleMedia(ctx, msg, doc.ID, doc.Filename, "document", &rec, logger)
			break
		}
		d.stats.Inc(CounterUnsupported)
		logger.Info("unsupported message type")
		d.reply(ctx, msg, replyUnsupported, logger)
	}

	d.record(ctx, rec, logger)
}

// handleText relays the text downstream and sends the bot reply back.
func (d *Dispatcher) handleText(ctx context.Context, msg envelope.ExtractedMessage, logger *slog.Logger) {
	if d.chat == nil {
		logger.Warn("no chat relay configured, dropping text")
		return
	}

	reply, err := d.chat.Relay(ctx, msg.TextBody, "")
	if err != nil {
		d.stats.Inc(CounterRelayFailed)
		d.publish(events.TypeRelayFailed, map[string]string{"message_id": msg.MessageID})
		logger.Error("chat relay failed", "error", err)
		d.reply(ctx, msg, replyRelayDown, logger)
		return
	}

	d.stats.Inc(CounterTextRelayed)
	d.publish(events.TypeRelayCompleted, map[string]any{
		"message_id": msg.MessageID,
		"end":        reply.End,
		"time_taken": reply.TimeTaken,
	})

	if reply.BotReply != "" {
		d.reply(ctx, msg, reply.BotReply, logger)
	}
}

// handleMedia fetches, stores and optionally forwards one attachment, whether
// it arrived as an image, a video or a document. The metadata and download
// phases fail independently; either failure ends this message's pipeline with
// an apology but touches nothing else.
func (d *Dispatcher) handleMedia(ctx context.Context, msg envelope.ExtractedMessage, mediaID, filename, msgType string, rec *storage.MessageRecord, logger *slog.Logger) {
	asset, err := d.fetcher.Fetch(ctx, mediaID)
	if err != nil {
		d.stats.Inc(CounterMediaFailed)
		d.publish(events.TypeMediaFailed, map[string]string{
			"message_id": msg.MessageID,
			"media_id":   mediaID,
		})
		logger.Error("media retrieval failed", "error", err)
		d.reply(ctx, msg, replyMediaFailed, logger)
		return
	}
	if asset.Filename == "" {
		asset.Filename = filename
	}

	phone := msg.SenderID
	if msg.Customer != nil && msg.Customer.Phone != "" {
		phone = msg.Customer.Phone
	}

	var path string
	if d.store != nil {
		path, err = d.store.Save(asset, phone, msgType)
		if err != nil {
			d.stats.Inc(CounterMediaFailed)
			d.publish(events.TypeMediaFailed, map[string]string{
				"message_id": msg.MessageID,
				"media_id":   mediaID,
			})
			logger.Error("media store failed", "error", err)
			d.reply(ctx, msg, replyMediaFailed, logger)
			return
		}
	}

	digest := blake3.Sum256(asset.Data)
	rec.MediaPath = path
	rec.MimeType = asset.MimeType
	rec.ByteSize = asset.ByteSize
	rec.Digest = hex.EncodeToString(digest[:])

	d.stats.Inc(CounterMediaStored)
	d.publish(events.TypeMediaStored, map[string]any{
		"message_id": msg.MessageID,
		"path":       path,
		"bytes":      asset.ByteSize,
	})
	logger.Info("media stored", "path", path, "bytes", asset.ByteSize)

	if d.docs != nil && media.IsBusinessDocument(asset.MimeType) {
		d.forwardDocument(ctx, msg, asset, logger)
	}

	d.reply(ctx, msg, replyMediaStored, logger)
}

// forwardDocument uploads a business document and triggers extraction.
func (d *Dispatcher) forwardDocument(ctx context.Context, msg envelope.ExtractedMessage, asset *media.Asset, logger *slog.Logger) {
	filename := asset.Filename
	if filename == "" {
		filename = asset.MediaID + "." + media.ExtensionFor(asset.MimeType, "")
	}

	id, err := d.docs.Upload(ctx, filename, asset.MimeType, asset.Data)
	if err != nil {
		logger.Error("document upload failed", "error", err)
		return
	}
	if err := d.docs.Process(ctx, id); err != nil {
		logger.Error("document processing failed", "document_id", id, "error", err)
		return
	}

	d.stats.Inc(CounterDocsQueued)
	d.publish(events.TypeDocumentQueued, map[string]any{
		"message_id":  msg.MessageID,
		"document_id": id,
	})
}

// reply sends text back to the customer, threaded to the inbound message.
func (d *Dispatcher) reply(ctx context.Context, msg envelope.ExtractedMessage, text string, logger *slog.Logger) {
	if d.sender == nil || text == "" {
		return
	}
	if err := d.sender.SendText(ctx, msg.SenderID, text, msg.MessageID); err != nil {
		d.stats.Inc(CounterSendFailures)
		logger.Error("outbound reply failed", "error", err)
		return
	}
	d.stats.Inc(CounterRepliesSent)
	d.publish(events.TypeReplySent, map[string]string{"message_id": msg.MessageID})
}

func (d *Dispatcher) record(ctx context.Context, rec storage.MessageRecord, logger *slog.Logger) {
	if d.recorder == nil {
		return
	}
	if err := d.recorder.Record(ctx, rec); err != nil {
		logger.Error("message log write failed", "error", err)
	}
}

func (d *Dispatcher) publish(eventType string, data any) {
	if d.hub != nil {
		d.hub.Publish(eventType, data)
	}
}

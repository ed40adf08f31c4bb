package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestMessageLog_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "state", "wabridge.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer db.Close()

	log := NewMessageLog(db)

	recs := []MessageRecord{
		{
			ID: "wamid.1", WaID: "614", Sender: "614", DisplayName: "Ada",
			Type: "text", Content: "hello",
			CreatedAt: time.Unix(1700000000, 0).UTC(),
		},
		{
			ID: "wamid.2", WaID: "614", Sender: "614", DisplayName: "Ada",
			Type: "image", MediaPath: "/m/images/a.jpg", MimeType: "image/jpeg",
			ByteSize: 2048, Digest: "abcd",
			CreatedAt: time.Unix(1700000100, 0).UTC(),
		},
	}
	for _, rec := range recs {
		if err := log.Record(ctx, rec); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := log.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent() returned %d records, want 2", len(got))
	}

	// Newest first.
	if got[0].ID != "wamid.2" {
		t.Errorf("first record = %s, want wamid.2", got[0].ID)
	}
	if got[0].ByteSize != 2048 {
		t.Errorf("ByteSize = %d, want 2048", got[0].ByteSize)
	}
	if got[1].Content != "hello" {
		t.Errorf("Content = %q, want hello", got[1].Content)
	}
}

func TestMessageLog_DuplicateIDIgnored(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "wabridge.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer db.Close()

	log := NewMessageLog(db)
	rec := MessageRecord{ID: "wamid.1", Sender: "614", Type: "text", Content: "hi"}

	if err := log.Record(ctx, rec); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	// Redelivery past the dedupe window must not error.
	if err := log.Record(ctx, rec); err != nil {
		t.Fatalf("Record() duplicate error = %v", err)
	}

	got, err := log.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Recent() returned %d records, want 1", len(got))
	}
}

func TestMessageLog_NilIsNoop(t *testing.T) {
	var log *MessageLog

	if err := log.Record(context.Background(), MessageRecord{ID: "x"}); err != nil {
		t.Errorf("nil log Record() error = %v", err)
	}
	got, err := log.Recent(context.Background(), 10)
	if err != nil {
		t.Errorf("nil log Recent() error = %v", err)
	}
	if got != nil {
		t.Errorf("nil log Recent() = %v, want nil", got)
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite(context.Background(), ""); err == nil {
		t.Fatal("OpenSQLite() should fail for empty path")
	}
}

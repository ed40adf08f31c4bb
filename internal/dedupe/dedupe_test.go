package dedupe

import (
	"testing"
	"time"
)

func TestSeen(t *testing.T) {
	d := New(time.Hour)
	key := Key("wamid.1", "614", "1700000000", "text")

	if d.Seen(key) {
		t.Error("first sighting should not be a duplicate")
	}
	if !d.Seen(key) {
		t.Error("second sighting should be a duplicate")
	}
}

func TestSeen_DistinctKeys(t *testing.T) {
	d := New(time.Hour)

	if d.Seen(Key("wamid.1", "614", "1700000000", "text")) {
		t.Error("unexpected duplicate")
	}
	// Same id, different sender: a different message.
	if d.Seen(Key("wamid.1", "615", "1700000000", "text")) {
		t.Error("different sender should not collide")
	}
	if d.Seen(Key("wamid.1", "614", "1700000000", "image")) {
		t.Error("different type should not collide")
	}
}

func TestSeen_Expiry(t *testing.T) {
	d := New(time.Minute)
	now := time.Unix(1700000000, 0)
	d.now = func() time.Time { return now }

	key := Key("wamid.1", "614", "1700000000", "text")
	if d.Seen(key) {
		t.Error("unexpected duplicate")
	}

	now = now.Add(30 * time.Second)
	if !d.Seen(key) {
		t.Error("key should still be remembered within TTL")
	}

	now = now.Add(2 * time.Minute)
	if d.Seen(key) {
		t.Error("expired key should not be a duplicate")
	}
}

func TestSweep(t *testing.T) {
	d := New(time.Minute)
	now := time.Unix(1700000000, 0)
	d.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		d.Seen(Key("wamid", "614", time.Now().String(), string(rune('a'+i))))
	}
	if d.Size() != 10 {
		t.Fatalf("size = %d, want 10", d.Size())
	}

	now = now.Add(2 * time.Minute)
	d.Seen(Key("new", "614", "t", "text"))

	// Old entries swept on the next call.
	if d.Size() != 1 {
		t.Errorf("size = %d, want 1 after sweep", d.Size())
	}
}

func TestNew_DefaultTTL(t *testing.T) {
	d := New(0)
	if d.ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", d.ttl)
	}
}

package services

import (
	"testing"
	"time"

	"backend/models"
)

func TestChatFeed_MergesBothHalves(t *testing.T) {
	snapshots := make(chan []ChatEntry, 8)
	feed := NewChatFeed(func(entries []ChatEntry) { snapshots <- entries })
	defer feed.Close()

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	sent := []models.Message{msg("s1", base), msg("s2", base.Add(2*time.Minute))}
	received := []models.Message{msg("r1", base.Add(time.Minute))}

	feed.ApplySent(sent)
	waitForSnapshot(t, snapshots)
	feed.ApplyReceived(received)
	final := waitForSnapshot(t, snapshots)

	var got []string
	for _, e := range final {
		if e.Kind == ChatEntryMessage {
			got = append(got, e.Message.ID)
		}
	}
	want := []string{"s1", "r1", "s2"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected interleaved order %v, got %v", want, got)
		}
	}
}

func TestChatFeed_RedeliveryDoesNotDuplicate(t *testing.T) {
	snapshots := make(chan []ChatEntry, 8)
	feed := NewChatFeed(func(entries []ChatEntry) { snapshots <- entries })
	defer feed.Close()

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	batch := []models.Message{msg("r1", base), msg("r2", base.Add(time.Second))}

	feed.ApplyReceived(batch)
	waitForSnapshot(t, snapshots)
	feed.ApplyReceived(batch) // subscription fires again with the same snapshot
	final := waitForSnapshot(t, snapshots)

	count := 0
	for _, e := range final {
		if e.Kind == ChatEntryMessage {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 messages after redelivery, got %d", count)
	}
}

func TestChatFeed_SnapshotReflectsAppliedBatches(t *testing.T) {
	applied := make(chan []ChatEntry, 8)
	feed := NewChatFeed(func(entries []ChatEntry) { applied <- entries })
	defer feed.Close()

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	feed.ApplySent([]models.Message{msg("s1", base)})
	waitForSnapshot(t, applied)

	snap := feed.Snapshot()
	// one separator + one message
	if len(snap) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snap))
	}
	if snap[0].Kind != ChatEntrySeparator || snap[1].Message.ID != "s1" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func waitForSnapshot(t *testing.T, ch chan []ChatEntry) []ChatEntry {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feed snapshot")
		return nil
	}
}

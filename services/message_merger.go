package services

import (
	"sort"

	"backend/models"
)

// MergeMessages reconciles one subscription batch into the working message
// list. The primary half replaces the list outright: its subscription is
// authoritative for its own messages, and replacement avoids stale
// accumulation after a reconnect. The secondary half first drops any current
// entry whose id reappears in the incoming batch, then appends the batch.
// Either way the result is re-sorted by CreatedAt ascending with ties keeping
// their relative order, so redelivering an already-merged batch is a no-op.
func MergeMessages(existing, incoming []models.Message, primary bool) []models.Message {
	var merged []models.Message
	if primary {
		merged = append(merged, incoming...)
	} else {
		inBatch := make(map[string]struct{}, len(incoming))
		for _, m := range incoming {
			inBatch[m.ID] = struct{}{}
		}
		for _, m := range existing {
			if _, dup := inBatch[m.ID]; !dup {
				merged = append(merged, m)
			}
		}
		merged = append(merged, incoming...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})
	return merged
}

const (
	ChatEntryMessage   = "message"
	ChatEntrySeparator = "separator"
)

// ChatEntry is one row of the rendered chat feed: a real message or a
// synthetic date separator.
type ChatEntry struct {
	Kind    string          `json:"kind"`
	Date    string          `json:"date,omitempty"` // separators only, yyyy-mm-dd
	Message *models.Message `json:"message,omitempty"`
}

// GroupByDate inserts one separator ahead of the first message of each
// calendar day, compared in local time. Input must already be sorted by
// CreatedAt.
func GroupByDate(sorted []models.Message) []ChatEntry {
	entries := make([]ChatEntry, 0, len(sorted))
	lastDay := ""
	for i := range sorted {
		day := sorted[i].CreatedAt.Local().Format("2006-01-02")
		if day != lastDay {
			entries = append(entries, ChatEntry{Kind: ChatEntrySeparator, Date: day})
			lastDay = day
		}
		m := sorted[i]
		entries = append(entries, ChatEntry{Kind: ChatEntryMessage, Message: &m})
	}
	return entries
}

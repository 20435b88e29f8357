package services

import (
	"sync"

	"backend/models"
)

// ChatFeed owns the canonical merged list for one open conversation. The two
// live subscription halves (sent-by-me, sent-to-me) push their batches through
// one channel and a single goroutine applies them in arrival order, so merge
// state is never mutated from two callbacks at once.

type feedBatch struct {
	messages []models.Message
	primary  bool
}

type ChatFeed struct {
	updates chan feedBatch
	done    chan struct{}
	closing sync.Once
	notify  func([]ChatEntry)

	mu      sync.Mutex
	current []models.Message
}

// NewChatFeed starts the reducer. notify, when non-nil, receives the regrouped
// feed after every applied batch; it runs on the reducer goroutine.
func NewChatFeed(notify func([]ChatEntry)) *ChatFeed {
	f := &ChatFeed{
		updates: make(chan feedBatch, 8),
		done:    make(chan struct{}),
		notify:  notify,
	}
	go f.run()
	return f
}

func (f *ChatFeed) run() {
	for {
		select {
		case b := <-f.updates:
			f.mu.Lock()
			f.current = MergeMessages(f.current, b.messages, b.primary)
			snapshot := GroupByDate(f.current)
			f.mu.Unlock()
			if f.notify != nil {
				f.notify(snapshot)
			}
		case <-f.done:
			return
		}
	}
}

// ApplySent feeds a batch from the sent-by-me subscription (the primary half).
func (f *ChatFeed) ApplySent(batch []models.Message) { f.apply(batch, true) }

// ApplyReceived feeds a batch from the sent-to-me subscription.
func (f *ChatFeed) ApplyReceived(batch []models.Message) { f.apply(batch, false) }

func (f *ChatFeed) apply(batch []models.Message, primary bool) {
	select {
	case f.updates <- feedBatch{messages: batch, primary: primary}:
	case <-f.done:
	}
}

// Snapshot returns the current grouped feed.
func (f *ChatFeed) Snapshot() []ChatEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return GroupByDate(f.current)
}

// Close stops the reducer. Pending batches may be dropped.
func (f *ChatFeed) Close() {
	f.closing.Do(func() { close(f.done) })
}

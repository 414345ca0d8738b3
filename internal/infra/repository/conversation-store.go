package repository

import (
	"sync"
	"time"

	"converse-backend/internal/domain/entities"
)

// GlobalConversationID keys the single shared transcript used when session
// isolation is disabled.
const GlobalConversationID = "global"

type conversationRecord struct {
	turns    []entities.Turn
	lastSeen time.Time
}

// ConversationStore keeps every conversation's turn sequence in memory,
// keyed by an opaque conversation id. Conversations are created empty on
// first append.
type ConversationStore struct {
	mu            sync.Mutex
	conversations map[string]*conversationRecord
	now           func() time.Time
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]*conversationRecord),
		now:           time.Now,
	}
}

// Append adds the turn to the end of the conversation and returns the
// post-append snapshot. Append and snapshot happen under one lock, so two
// concurrent appends cannot interleave inside the read-append region.
func (cs *ConversationStore) Append(conversationID string, turn entities.Turn) []entities.Turn {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	rec := cs.conversations[conversationID]
	if rec == nil {
		rec = &conversationRecord{}
		cs.conversations[conversationID] = rec
	}
	rec.turns = append(rec.turns, turn)
	rec.lastSeen = cs.now()

	return append([]entities.Turn(nil), rec.turns...)
}

// Snapshot returns the full history in chronological order. The result is a
// copy; callers cannot mutate the stored sequence through it.
func (cs *ConversationStore) Snapshot(conversationID string) []entities.Turn {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	rec := cs.conversations[conversationID]
	if rec == nil {
		return []entities.Turn{}
	}
	rec.lastSeen = cs.now()

	return append([]entities.Turn(nil), rec.turns...)
}

func (cs *ConversationStore) Clear(conversationID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.conversations, conversationID)
}

// EvictIdle drops conversations whose last activity is older than ttl and
// returns how many were removed. The global conversation is never evicted.
func (cs *ConversationStore) EvictIdle(ttl time.Duration) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cutoff := cs.now().Add(-ttl)
	removed := 0
	for id, rec := range cs.conversations {
		if id == GlobalConversationID {
			continue
		}
		if rec.lastSeen.Before(cutoff) {
			delete(cs.conversations, id)
			removed++
		}
	}
	return removed
}

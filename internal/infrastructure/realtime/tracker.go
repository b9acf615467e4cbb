package realtime

import (
	"sync"
	"time"

	collab "go-collab/internal/pkg/collab/application/domain"
)

// Tracker keeps, per room, the ordered list of most recent editors. A room
// holds at most one entry per connection; a new edit moves that connection's
// entry to the end. Entries are never expired or capped, so a room's list is
// bounded by its membership.
type Tracker struct {
	mu      sync.RWMutex
	editors map[string][]collab.EditorEntry
}

func NewTracker() *Tracker {
	return &Tracker{editors: make(map[string][]collab.EditorEntry)}
}

// RecordEdit replaces any prior entry for the connection and appends a fresh
// one with the given name snapshot and timestamp.
func (t *Tracker) RecordEdit(roomID, connID, username string, ts time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.editors[roomID]
	kept := entries[:0]
	for _, e := range entries {
		if e.SocketID != connID {
			kept = append(kept, e)
		}
	}
	t.editors[roomID] = append(kept, collab.EditorEntry{
		SocketID:  connID,
		Username:  username,
		Timestamp: ts,
	})
}

// Snapshot returns a copy of the room's editor list, oldest edit first.
// An unknown room yields an empty list.
func (t *Tracker) Snapshot(roomID string) []collab.EditorEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries := t.editors[roomID]
	if len(entries) == 0 {
		return nil
	}
	out := make([]collab.EditorEntry, len(entries))
	copy(out, entries)
	return out
}

// DropRoom discards a room's editor history once the room has emptied.
func (t *Tracker) DropRoom(roomID string) {
	t.mu.Lock()
	delete(t.editors, roomID)
	t.mu.Unlock()
}

// Clear drops all editor state. Used on router teardown.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.editors = make(map[string][]collab.EditorEntry)
	t.mu.Unlock()
}

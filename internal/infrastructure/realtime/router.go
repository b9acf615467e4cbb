package realtime

import (
	"encoding/json"
	"sync"
	"time"

	collab "go-collab/internal/pkg/collab/application/domain"
)

// Sender is the outbound half of a connection. *Connection satisfies it; tests
// substitute recorders.
type Sender interface {
	Send(payload []byte) error
	Close(code int, reason string)
}

// Router is the event core: it owns the session table, the name registry, the
// room directory, and the recent-editor tracker, and turns each inbound event
// into a set of fire-and-forget deliveries.
//
// Compound operations (join's read-then-broadcast, code-change's
// record-then-broadcast, disconnect's fanout-then-cleanup) run under a single
// mutex so every broadcast uses a consistent point-in-time snapshot and editor
// updates are linearized. Deliveries are non-blocking sends into each
// connection's buffer, so holding the lock across them is cheap.
type Router struct {
	mu        sync.Mutex
	sessions  map[string]Sender
	registry  *Registry
	directory *Directory
	tracker   *Tracker
}

// NewRouter constructs an initialized Router.
func NewRouter() *Router {
	return &Router{
		sessions:  make(map[string]Sender),
		registry:  NewRegistry(),
		directory: NewDirectory(),
		tracker:   NewTracker(),
	}
}

// Attach registers a connection so it can receive deliveries. A connection
// must be attached before any of its events are routed.
func (r *Router) Attach(connID string, s Sender) {
	r.mu.Lock()
	r.sessions[connID] = s
	r.mu.Unlock()
}

// Join binds the name, adds the connection to the room, and delivers a JOINED
// event carrying the full roster to every member, the joiner included. A
// re-join of the same room is idempotent on membership but re-broadcasts.
//
// Persistence of the join is the caller's concern; it must never gate this.
func (r *Router) Join(roomID, connID, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[connID]; !ok {
		return
	}

	r.registry.Bind(connID, username)
	r.directory.Join(roomID, connID)

	members := r.directory.Members(roomID)
	clients := make([]collab.Client, 0, len(members))
	for _, id := range members {
		name, _ := r.registry.Lookup(id)
		clients = append(clients, collab.Client{SocketID: id, Username: name})
	}

	payload, _ := json.Marshal(collab.JoinedEvent{
		Type:     collab.ActionJoined,
		Clients:  clients,
		Username: username,
		SocketID: connID,
	})
	for _, id := range members {
		r.deliverLocked(id, payload)
	}
}

// CodeChange records the edit and broadcasts: the updated editor list to every
// member including the sender, then the code to every member except the
// sender. A sender that is not a member of the room is a no-op.
func (r *Router) CodeChange(roomID, connID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.directory.Members(roomID)
	if !contains(members, connID) {
		return
	}

	username, _ := r.registry.Lookup(connID)
	r.tracker.RecordEdit(roomID, connID, username, time.Now())

	editorsPayload, _ := json.Marshal(collab.RecentEditorsEvent{
		Type:    collab.ActionRecentEditors,
		Editors: r.tracker.Snapshot(roomID),
	})
	codePayload, _ := json.Marshal(collab.CodeChangeEvent{
		Type: collab.ActionCodeChange,
		Code: code,
	})

	for _, id := range members {
		r.deliverLocked(id, editorsPayload)
		if id != connID {
			r.deliverLocked(id, codePayload)
		}
	}
}

// SyncCode delivers the code to exactly the target connection. No room or
// membership validation is performed; the caller is trusted to know the
// target. An unknown target is a silent no-op.
func (r *Router) SyncCode(targetID, code string) {
	payload, _ := json.Marshal(collab.CodeChangeEvent{
		Type: collab.ActionCodeChange,
		Code: code,
	})

	r.mu.Lock()
	r.deliverLocked(targetID, payload)
	r.mu.Unlock()
}

// Disconnect notifies every other member of every room the connection was in,
// then removes all of its state. Fired exactly once per connection by the
// transport layer; afterwards no further events from it are routed.
func (r *Router) Disconnect(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	username, _ := r.registry.Lookup(connID)
	payload, _ := json.Marshal(collab.DisconnectedEvent{
		Type:     collab.ActionDisconnected,
		SocketID: connID,
		Username: username,
	})

	for _, roomID := range r.directory.RoomsOf(connID) {
		for _, id := range r.directory.Members(roomID) {
			if id != connID {
				r.deliverLocked(id, payload)
			}
		}
	}

	r.registry.Unbind(connID)
	for _, roomID := range r.directory.Remove(connID) {
		if len(r.directory.Members(roomID)) == 0 {
			r.tracker.DropRoom(roomID)
		}
	}
	delete(r.sessions, connID)
}

// Members returns the room roster with resolved names, for the read API.
func (r *Router) Members(roomID string) []collab.Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.directory.Members(roomID)
	clients := make([]collab.Client, 0, len(members))
	for _, id := range members {
		name, _ := r.registry.Lookup(id)
		clients = append(clients, collab.Client{SocketID: id, Username: name})
	}
	return clients
}

// RecentEditors returns the room's ordered editor list, for the read API.
func (r *Router) RecentEditors(roomID string) []collab.EditorEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tracker.Snapshot(roomID)
}

// Close terminates all connections and clears all state.
func (r *Router) Close() {
	r.mu.Lock()
	sessions := make([]Sender, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]Sender)
	r.registry.Clear()
	r.directory.Clear()
	r.tracker.Clear()
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close(1001, "router shutdown")
	}
}

// deliverLocked sends to one session if it is still attached. A recipient
// whose transport is already gone is silently dropped.
func (r *Router) deliverLocked(connID string, payload []byte) {
	if s := r.sessions[connID]; s != nil {
		_ = s.Send(payload)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

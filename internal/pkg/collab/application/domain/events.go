package collab

import "time"

// Wire event names. Inherited from the original client protocol, so the
// strings are part of the public contract and must not change.
const (
	ActionJoin          = "join"
	ActionJoined        = "joined"
	ActionCodeChange    = "code-change"
	ActionSyncCode      = "sync-code"
	ActionDisconnected  = "disconnected"
	ActionRecentEditors = "recent-editors-update"
)

// Client is one room member as seen by peers.
type Client struct {
	SocketID string `json:"socketId"`
	Username string `json:"username,omitempty"`
}

// EditorEntry records the most recent edit by a connection in a room.
// A room holds at most one entry per connection, ordered oldest edit first.
type EditorEntry struct {
	SocketID  string    `json:"socketId"`
	Username  string    `json:"username,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// JoinedEvent is delivered to every member of a room (including the joiner)
// when a connection joins. Clients is the full roster so a new joiner learns
// the room in the same frame existing members learn about the joiner.
type JoinedEvent struct {
	Type     string   `json:"type"`
	Clients  []Client `json:"clients"`
	Username string   `json:"username,omitempty"`
	SocketID string   `json:"socketId"`
}

// CodeChangeEvent carries only the code payload; recipients do not learn
// the sender or room from it.
type CodeChangeEvent struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

// RecentEditorsEvent is the full ordered editor list for a room.
type RecentEditorsEvent struct {
	Type    string        `json:"type"`
	Editors []EditorEntry `json:"editors"`
}

// DisconnectedEvent notifies remaining members that a peer left.
type DisconnectedEvent struct {
	Type     string `json:"type"`
	SocketID string `json:"socketId"`
	Username string `json:"username,omitempty"`
}

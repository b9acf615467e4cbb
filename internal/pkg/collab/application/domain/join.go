package collab

import (
	"errors"
	"strings"
	"time"
)

// JoinRecord is the durable side record written whenever a user joins a room.
// It is append-only and never read back on the routing path.
type JoinRecord struct {
	ID        string    `db:"id"`
	Username  string    `db:"username"`
	RoomID    string    `db:"room_id"`
	CreatedAt time.Time `db:"created_at"`
}

func NewJoinRecord(username, roomID string) (*JoinRecord, error) {
	username = strings.TrimSpace(username)
	if username == "" || roomID == "" {
		return nil, errors.New("username and room_id are required")
	}
	return &JoinRecord{
		Username:  username,
		RoomID:    roomID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

package repository

import (
	"context"
	"errors"

	collab "go-collab/internal/pkg/collab/application/domain"
)

// ErrDuplicateUsername reports that a join record already exists for the
// username; stored user records are unique by name.
var ErrDuplicateUsername = errors.New("session repository: username already recorded")

// SessionRepository defines persistence for join records. The relay only ever
// appends on the write path; reads serve the join-history endpoint.
type SessionRepository interface {
	SaveJoin(ctx context.Context, rec collab.JoinRecord) (id string, err error)
	ListJoinsByRoom(ctx context.Context, roomID string, limit int) ([]collab.JoinRecord, error)
}

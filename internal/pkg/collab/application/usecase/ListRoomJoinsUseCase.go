package usecase

import (
	"context"
	"fmt"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// ListRoomJoinsInput wraps the room identifier whose join history is fetched.
type ListRoomJoinsInput struct {
	RoomID string
	Limit  int
}

// ListRoomJoinsUseCase returns the persisted join records for a room, most
// recent first.
type ListRoomJoinsUseCase struct {
	Repo repository.SessionRepository
}

func NewListRoomJoinsUseCase(repo repository.SessionRepository) *ListRoomJoinsUseCase {
	return &ListRoomJoinsUseCase{Repo: repo}
}

func (uc *ListRoomJoinsUseCase) Execute(ctx context.Context, in ListRoomJoinsInput) ([]collab.JoinRecord, error) {
	if in.RoomID == "" {
		return nil, fmt.Errorf("room_id is required")
	}

	recs, err := uc.Repo.ListJoinsByRoom(ctx, in.RoomID, in.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return recs, nil
}

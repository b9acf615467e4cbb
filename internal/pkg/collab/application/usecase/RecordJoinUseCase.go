package usecase

import (
	"context"
	"errors"
	"fmt"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// RecordJoinInput carries the identity pair persisted when a user joins a room.
type RecordJoinInput struct {
	Username string
	RoomID   string
}

// RecordJoinUseCase appends a join record. The write is best-effort from the
// relay's point of view: callers run it off the routing path and only log
// failures. A duplicate username means the record already exists and is
// reported as success so queue workers do not retry it.
type RecordJoinUseCase struct {
	Repo repository.SessionRepository
}

func NewRecordJoinUseCase(repo repository.SessionRepository) *RecordJoinUseCase {
	return &RecordJoinUseCase{Repo: repo}
}

func (uc *RecordJoinUseCase) Execute(ctx context.Context, in RecordJoinInput) (*collab.JoinRecord, error) {
	rec, err := collab.NewJoinRecord(in.Username, in.RoomID)
	if err != nil {
		return nil, err
	}

	id, err := uc.Repo.SaveJoin(ctx, *rec)
	if errors.Is(err, repository.ErrDuplicateUsername) {
		return rec, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	rec.ID = id
	return rec, nil
}

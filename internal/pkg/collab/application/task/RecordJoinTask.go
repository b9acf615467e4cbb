package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "go-collab/internal/infrastructure/queue/port"
	"go-collab/internal/pkg/collab/application/usecase"
	repoAdapter "go-collab/internal/pkg/collab/persistence/repository/adapter"
)

// RecordJoinTaskType is the queue task name for persisting a room join.
const RecordJoinTaskType = "collab:record_join"

// RecordJoinTaskPayload is the JSON payload transported via the queue.
type RecordJoinTaskPayload struct {
	Username string `json:"username"`
	RoomID   string `json:"roomId"`
}

// RegisterRecordJoinTask binds the task handler to the provided server. The
// handler runs RecordJoinUseCase against the given DB pool.
func RegisterRecordJoinTask(srv qport.Server, pool *pgxpool.Pool) {
	srv.Register(RecordJoinTaskType, func(ctx context.Context, t qport.Task) error {
		var p RecordJoinTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: retrying cannot help
			return err
		}

		uc := usecase.NewRecordJoinUseCase(repoAdapter.NewPgSessionRepository(pool))

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, err := uc.Execute(ctx, usecase.RecordJoinInput{
			Username: p.Username,
			RoomID:   p.RoomID,
		})
		return err
	})
}

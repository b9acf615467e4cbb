package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

var _ repository.SessionRepository = (*PgSessionRepository)(nil)

func (r *PgSessionRepository) SaveJoin(ctx context.Context, rec collab.JoinRecord) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgSessionRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO collab.room_join (username, room_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id::text
	`, rec.Username, rec.RoomID, rec.CreatedAt).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", repository.ErrDuplicateUsername
		}
		return "", err
	}
	return id, nil
}

func (r *PgSessionRepository) ListJoinsByRoom(ctx context.Context, roomID string, limit int) ([]collab.JoinRecord, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgSessionRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, username, room_id, created_at
		FROM collab.room_join
		WHERE room_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []collab.JoinRecord
	for rows.Next() {
		var rec collab.JoinRecord
		if err := rows.Scan(&rec.ID, &rec.Username, &rec.RoomID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return recs, nil
}

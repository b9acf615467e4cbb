package v1

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cport "go-collab/internal/infrastructure/cache/port"
	qport "go-collab/internal/infrastructure/queue/port"
	"go-collab/internal/infrastructure/realtime"
	httpHandler "go-collab/internal/pkg/collab/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, client qport.Client, cache cport.Cache, rt *realtime.Router, logger *slog.Logger) {
	v1 := r.Group("/api/v1")
	// Pass the collaborators down to the HTTP layer
	httpHandler.RegisterRoutes(v1, pool, client, cache, rt, logger)
}

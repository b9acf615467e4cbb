package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cport "go-collab/internal/infrastructure/cache/port"
	qport "go-collab/internal/infrastructure/queue/port"
	"go-collab/internal/infrastructure/realtime"
	"go-collab/internal/pkg/collab/presentation/controller"
)

// RegisterRoutes registers collaboration endpoints under the given router group
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, client qport.Client, cache cport.Cache, rt *realtime.Router, logger *slog.Logger) {
	socketCtl := controller.NewCollabSocketController(pool, rt, client, logger)
	membersCtl := controller.NewGetRoomMembersController(rt)
	editorsCtl := controller.NewGetRoomEditorsController(rt)
	joinsCtl := controller.NewGetRoomJoinsController(pool, cache)

	// GET /api/v1/collab/ws -> websocket endpoint for realtime collaboration
	g.GET("/collab/ws", socketCtl.Handle())

	// GET /api/v1/room/:roomId/members -> live roster
	g.GET("/room/:roomId/members", membersCtl.Handle())

	// GET /api/v1/room/:roomId/editors -> recent editors, oldest edit first
	g.GET("/room/:roomId/editors", editorsCtl.Handle())

	// GET /api/v1/room/:roomId/joins -> persisted join history
	g.GET("/room/:roomId/joins", joinsCtl.Handle())
}

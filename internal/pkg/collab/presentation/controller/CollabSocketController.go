package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "go-collab/internal/infrastructure/queue/port"
	"go-collab/internal/infrastructure/realtime"
	collab "go-collab/internal/pkg/collab/application/domain"
	"go-collab/internal/pkg/collab/application/task"
	"go-collab/internal/pkg/collab/application/usecase"
	repoAdapter "go-collab/internal/pkg/collab/persistence/repository/adapter"
)

// CollabSocketController handles the websocket endpoint for realtime
// collaboration traffic. It parses inbound frames, hands them to the event
// router, and requests best-effort persistence of joins off the routing path.
type CollabSocketController struct {
	rt           *realtime.Router
	q            qport.Client
	recordJoinUC *usecase.RecordJoinUseCase
	log          *slog.Logger

	persistTimeout time.Duration
}

// NewCollabSocketController wires the socket endpoint. The queue client may be
// nil; joins are then persisted directly in a background goroutine.
func NewCollabSocketController(pool *pgxpool.Pool, rt *realtime.Router, q qport.Client, logger *slog.Logger) *CollabSocketController {
	return &CollabSocketController{
		rt:             rt,
		q:              q,
		recordJoinUC:   usecase.NewRecordJoinUseCase(repoAdapter.NewPgSessionRepository(pool)),
		log:            logger,
		persistTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when auth is added.
		return true
	},
}

type inboundFrame struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId,omitempty"`
	Username string `json:"username,omitempty"`
	Code     string `json:"code,omitempty"`
	SocketID string `json:"socketId,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type connectedFrame struct {
	Type     string `json:"type"`
	SocketID string `json:"socketId"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades HTTP connections to websocket and routes frames until the
// client disconnects.
func (ctl *CollabSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; nothing more to do.
			return
		}

		conn := realtime.NewConnection(ws)
		ctl.rt.Attach(conn.ID, conn)
		conn.Start()
		defer func() {
			ctl.rt.Disconnect(conn.ID)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		// Tell the client its socket id so it can be referenced in sync-code.
		if payload, err := json.Marshal(connectedFrame{Type: "connected", SocketID: conn.ID}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) &&
					!errors.Is(err, websocket.ErrCloseSent) {
					ctl.log.Debug("socket read ended", "socket", conn.ID, "err", err)
				}
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case collab.ActionJoin:
				ctl.handleJoin(conn, frame)
			case collab.ActionCodeChange:
				ctl.handleCodeChange(conn, frame)
			case collab.ActionSyncCode:
				ctl.handleSyncCode(conn, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *CollabSocketController) handleJoin(conn *realtime.Connection, frame inboundFrame) {
	if frame.RoomID == "" {
		ctl.replyError(conn, "bad_request", "roomId is required")
		return
	}

	// Broadcast first; persistence is best-effort and must never gate it.
	ctl.rt.Join(frame.RoomID, conn.ID, frame.Username)
	ctl.persistJoin(frame.Username, frame.RoomID)
}

func (ctl *CollabSocketController) handleCodeChange(conn *realtime.Connection, frame inboundFrame) {
	if frame.RoomID == "" {
		ctl.replyError(conn, "bad_request", "roomId is required")
		return
	}
	ctl.rt.CodeChange(frame.RoomID, conn.ID, frame.Code)
}

func (ctl *CollabSocketController) handleSyncCode(conn *realtime.Connection, frame inboundFrame) {
	if frame.SocketID == "" {
		ctl.replyError(conn, "bad_request", "socketId is required")
		return
	}
	ctl.rt.SyncCode(frame.SocketID, frame.Code)
}

// persistJoin records {username, roomId} durably without ever blocking or
// failing the join. Preferred path is the task queue; without one, or when
// enqueueing fails, it falls back to a direct background insert.
func (ctl *CollabSocketController) persistJoin(username, roomID string) {
	if strings.TrimSpace(username) == "" {
		// Nothing durable to record for an anonymous join.
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), ctl.persistTimeout)
		defer cancel()

		if ctl.q != nil {
			if payload, err := json.Marshal(task.RecordJoinTaskPayload{Username: username, RoomID: roomID}); err == nil {
				opts := qport.EnqueueOption{Queue: "collab", MaxRetry: 10}
				if _, err := ctl.q.Enqueue(ctx, qport.Task{Type: task.RecordJoinTaskType, Payload: payload}, opts); err == nil {
					return
				}
				ctl.log.Warn("join record enqueue failed, falling back to direct insert", "room", roomID)
			}
		}

		if _, err := ctl.recordJoinUC.Execute(ctx, usecase.RecordJoinInput{Username: username, RoomID: roomID}); err != nil {
			ctl.log.Error("join record insert failed", "room", roomID, "err", err)
		}
	}()
}

func (ctl *CollabSocketController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{Type: "error", Code: code, Error: message}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}

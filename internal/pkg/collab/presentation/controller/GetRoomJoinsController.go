package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cport "go-collab/internal/infrastructure/cache/port"
	"go-collab/internal/pkg/collab/application/usecase"
	"go-collab/internal/pkg/collab/persistence/repository/adapter"
)

// GetRoomJoinsController serves the persisted join history of a room,
// cache-aside through the cache port when one is configured.
type GetRoomJoinsController struct {
	UC    *usecase.ListRoomJoinsUseCase
	cache cport.Cache
}

const joinsCacheTTL = 30 * time.Second

func NewGetRoomJoinsController(pool *pgxpool.Pool, cache cport.Cache) *GetRoomJoinsController {
	repo := adapter.NewPgSessionRepository(pool)
	return &GetRoomJoinsController{
		UC:    usecase.NewListRoomJoinsUseCase(repo),
		cache: cache,
	}
}

func (h *GetRoomJoinsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("roomId")
		if roomID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId is required"})
			return
		}

		limit := 50
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		key := fmt.Sprintf("collab:joins:%s:%d", roomID, limit)
		if h.cache != nil {
			if cached, err := h.cache.Get(ctx, key); err == nil {
				c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
				return
			}
		}

		recs, err := h.UC.Execute(ctx, usecase.ListRoomJoinsInput{RoomID: roomID, Limit: limit})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(recs))
		for _, r := range recs {
			out = append(out, gin.H{
				"id":         r.ID,
				"username":   r.Username,
				"room_id":    r.RoomID,
				"created_at": r.CreatedAt,
			})
		}

		body, err := json.Marshal(gin.H{
			"joins": out,
			"limit": limit,
			"count": len(out),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode response"})
			return
		}

		if h.cache != nil {
			// Best-effort; a failed cache write never fails the read.
			_ = h.cache.Set(ctx, key, string(body), joinsCacheTTL)
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	}
}

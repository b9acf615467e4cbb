package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-collab/internal/infrastructure/realtime"
	collab "go-collab/internal/pkg/collab/application/domain"
)

// GetRoomMembersController serves the live roster of a room (one controller per endpoint)
type GetRoomMembersController struct {
	rt *realtime.Router
}

func NewGetRoomMembersController(rt *realtime.Router) *GetRoomMembersController {
	return &GetRoomMembersController{rt: rt}
}

func (h *GetRoomMembersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("roomId")
		if roomID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId is required"})
			return
		}

		clients := h.rt.Members(roomID)
		if clients == nil {
			// Unknown room reads as empty, never as an error.
			clients = []collab.Client{}
		}

		c.JSON(http.StatusOK, gin.H{
			"clients": clients,
			"count":   len(clients),
		})
	}
}

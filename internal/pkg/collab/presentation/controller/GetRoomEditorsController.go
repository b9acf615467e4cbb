package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-collab/internal/infrastructure/realtime"
	collab "go-collab/internal/pkg/collab/application/domain"
)

// GetRoomEditorsController serves a room's recent-editor list (one controller per endpoint)
type GetRoomEditorsController struct {
	rt *realtime.Router
}

func NewGetRoomEditorsController(rt *realtime.Router) *GetRoomEditorsController {
	return &GetRoomEditorsController{rt: rt}
}

func (h *GetRoomEditorsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("roomId")
		if roomID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId is required"})
			return
		}

		editors := h.rt.RecentEditors(roomID)
		if editors == nil {
			editors = []collab.EditorEntry{}
		}

		c.JSON(http.StatusOK, gin.H{
			"editors": editors,
			"count":   len(editors),
		})
	}
}

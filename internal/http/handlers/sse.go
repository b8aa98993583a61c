package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/promptvault-backend/internal/ctxutil"
	"github.com/yungbote/promptvault-backend/internal/sse"
)

type SSEHandler struct {
	hub *sse.SSEHub
}

func NewSSEHandler(hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{hub: hub}
}

// GET /api/sse/stream
// Every stream gets the pack channel; listing grids re-render from the
// absolute counts carried in each event. Anonymous viewers may connect.
func (sh *SSEHandler) Stream(c *gin.Context) {
	userID := uuid.Nil
	if viewerID := ctxutil.ViewerID(c.Request.Context()); viewerID != nil {
		userID = *viewerID
	}

	client := sh.hub.NewSSEClient(userID)
	sh.hub.AddChannel(client, sse.ChannelPacks)
	defer sh.hub.CloseClient(client)

	sh.hub.ServeHTTP(c.Writer, c.Request, client)
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snedea/meal-planner-app/internal/realtime"
)

// RealtimeHandler upgrades authenticated requests to summary websockets.
type RealtimeHandler struct {
	hub *realtime.Hub
	log *zap.Logger
}

// NewRealtimeHandler creates a new RealtimeHandler.
func NewRealtimeHandler(hub *realtime.Hub, log *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, log: log}
}

// Connect serves the websocket until the client disconnects.
// @Summary Live summary updates
// @Tags realtime
// @Param token query string false "Access token when no Authorization header can be sent"
// @Router /ws [get]
func (h *RealtimeHandler) Connect(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.hub.Serve(c.Writer, c.Request, userID); err != nil {
		h.log.Debug("websocket upgrade failed", zap.Error(err))
	}
}

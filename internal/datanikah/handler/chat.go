package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/datanikah/internal/datanikah/biz"
	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/internal/pkg/httputils"
)

// ChatHandler serves the public assistant.
type ChatHandler struct {
	svc *biz.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(svc *biz.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// StartSession handles POST /v1/chat/sessions.
func (h *ChatHandler) StartSession(c *gin.Context) {
	httputils.WriteResponse(c, nil, h.svc.Start())
}

// GetSession handles GET /v1/chat/sessions/:id.
func (h *ChatHandler) GetSession(c *gin.Context) {
	sess, err := h.svc.Session(c.Param("id"))
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, sess)
}

// SendMessage handles POST /v1/chat/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req model.SendMessageRequest
	if err := bindJSON(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	resp, err := h.svc.Send(c.Request.Context(), req.SessionID, req.Text)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, resp)
}

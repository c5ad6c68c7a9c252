package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pdfchat/internal/session"
	"pdfchat/internal/transport/http/response"
)

type ChatHandler struct {
	registry *session.Registry
	timeout  time.Duration
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

func NewChatHandler(registry *session.Registry, timeout time.Duration) *ChatHandler {
	return &ChatHandler{registry: registry, timeout: timeout}
}

func (h *ChatHandler) Send(c *gin.Context) {
	sess, ok := resolveSession(c, h.registry, h.timeout)
	if !ok {
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result := sess.Chat(c.Request.Context(), req.Message)
	switch {
	case result.Success:
		response.OK(c, result)
	case result.FailCode == session.FailNoDocuments:
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest,
			"no documents loaded in this session, upload a PDF first")
	default:
		// The apology text and partial snapshot still go back to the client.
		c.JSON(http.StatusBadGateway, response.APIResponse{
			Code:    response.CodeLLMFailed,
			Message: result.Error,
			Data:    result,
		})
	}
}

func (h *ChatHandler) History(c *gin.Context) {
	sess, ok := resolveSession(c, h.registry, h.timeout)
	if !ok {
		return
	}

	turns := sess.History()
	response.OK(c, gin.H{
		"messages":       turns,
		"total_messages": len(turns),
	})
}

func (h *ChatHandler) Clear(c *gin.Context) {
	sess, ok := resolveSession(c, h.registry, h.timeout)
	if !ok {
		return
	}
	sess.ClearConversation()
	response.OK(c, gin.H{"cleared_session_id": sess.ID()})
}

func (h *ChatHandler) Stats(c *gin.Context) {
	sess, ok := resolveSession(c, h.registry, h.timeout)
	if !ok {
		return
	}
	response.OK(c, sess.Summary())
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pdfchat/internal/session"
	"pdfchat/internal/transport/http/response"
)

type SessionHandler struct {
	registry *session.Registry
	timeout  time.Duration
}

type CreateSessionRequest struct {
	SessionID string `json:"session_id" binding:"max=128"`
}

func NewSessionHandler(registry *session.Registry, timeout time.Duration) *SessionHandler {
	return &SessionHandler{registry: registry, timeout: timeout}
}

// resolveSession distinguishes a session that never existed (404) from one
// that exists but went stale (410).
func resolveSession(c *gin.Context, registry *session.Registry, timeout time.Duration) (*session.Session, bool) {
	id := c.Param("id")
	sess, ok := registry.Get(id)
	if !ok {
		response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, "session not found")
		return nil, false
	}
	if sess.Expired(timeout) {
		response.Error(c, http.StatusGone, response.CodeSessionExpired, "session expired")
		return nil, false
	}
	return sess, true
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
			return
		}
	}

	sess, err := h.registry.Create(req.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionExists) {
			response.Error(c, http.StatusConflict, response.CodeSessionExists, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create session failed")
		}
		return
	}
	c.JSON(http.StatusCreated, response.APIResponse{
		Code:    response.CodeOK,
		Message: "session created",
		Data:    sess.Summary(),
	})
}

func (h *SessionHandler) Get(c *gin.Context) {
	sess, ok := resolveSession(c, h.registry, h.timeout)
	if !ok {
		return
	}
	response.OK(c, sess.Summary())
}

// List sweeps expired sessions first, then returns snapshots of the rest.
func (h *SessionHandler) List(c *gin.Context) {
	h.registry.SweepExpired(h.timeout)

	sessions := h.registry.All()
	summaries := make([]*session.Snapshot, 0, len(sessions))
	for _, sess := range sessions {
		summaries = append(summaries, sess.Summary())
	}
	response.OK(c, gin.H{
		"sessions":    summaries,
		"total_count": len(summaries),
	})
}

func (h *SessionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !h.registry.Delete(id) {
		response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, "session not found")
		return
	}
	response.OK(c, gin.H{"deleted_session_id": id})
}

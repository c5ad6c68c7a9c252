package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pdfchat/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	llmStatus := h.checkLLM(ctx)
	ocrStatus := h.checkOCR()

	statusCode := http.StatusOK
	if !llmStatus.OK {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"app":              h.app.Config.App.Name,
		"env":              h.app.Config.App.Env,
		"uptime_sec":       int(time.Since(h.app.StartedAt).Seconds()),
		"active_sessions":  h.app.Registry.Len(),
		"sessions_created": h.app.Registry.CreatedCount(),
		"dependencies": gin.H{
			"llm": llmStatus,
			"ocr": ocrStatus,
		},
	})
}

func (h *HealthHandler) checkLLM(ctx context.Context) dependencyStatus {
	if err := h.app.LLM.Ping(ctx); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

// OCR is optional: without an API key the extractor simply has no fallback,
// so only key presence is probed.
func (h *HealthHandler) checkOCR() dependencyStatus {
	if !h.app.OCR.Available() {
		return dependencyStatus{OK: false, Message: "ocr api key not configured"}
	}
	return dependencyStatus{OK: true}
}

package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pdfchat/internal/ai"
	"pdfchat/internal/config"
	"pdfchat/internal/session"
	"pdfchat/internal/transport/http/response"
)

type DocumentHandler struct {
	registry *session.Registry
	timeout  time.Duration
	upload   config.UploadConfig
}

func NewDocumentHandler(registry *session.Registry, timeout time.Duration, upload config.UploadConfig) *DocumentHandler {
	return &DocumentHandler{registry: registry, timeout: timeout, upload: upload}
}

// Upload accepts a multipart form with "file" (PDF) and optional "name",
// extracts text and loads the document into the session.
func (h *DocumentHandler) Upload(c *gin.Context) {
	sess, ok := resolveSession(c, h.registry, h.timeout)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	maxBytes := int64(h.upload.MaxPDFMB) << 20
	if file.Size > maxBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeFileTooLarge,
			fmt.Sprintf("file too large (max %dMB)", h.upload.MaxPDFMB))
		return
	}
	if file.Size < h.upload.MinFileBytes {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file too small to be a valid PDF")
		return
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "only PDF files are allowed")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = file.Filename
	}

	doc, err := sess.LoadDocument(c.Request.Context(), name, data)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrDocumentExists):
			response.Error(c, http.StatusConflict, response.CodeDocumentExists, err.Error())
		case errors.Is(err, session.ErrExtractionFailed):
			response.Error(c, http.StatusUnprocessableEntity, response.CodeExtractionFailed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load document failed")
		}
		return
	}

	response.OK(c, gin.H{
		"document":         doc,
		"content_length":   len(doc.Content),
		"estimated_tokens": ai.EstimateTokens(doc.Content),
		"document_count":   len(sess.Documents()),
	})
}

func (h *DocumentHandler) List(c *gin.Context) {
	sess, ok := resolveSession(c, h.registry, h.timeout)
	if !ok {
		return
	}

	docs := sess.Documents()
	totalTokens := 0
	for _, doc := range docs {
		totalTokens += ai.EstimateTokens(doc.Content)
	}
	response.OK(c, gin.H{
		"documents":    docs,
		"total_count":  len(docs),
		"total_tokens": totalTokens,
	})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	sess, ok := resolveSession(c, h.registry, h.timeout)
	if !ok {
		return
	}

	name := c.Param("name")
	if !sess.RemoveDocument(name) {
		response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound,
			fmt.Sprintf("document %q not found in session", name))
		return
	}
	response.OK(c, gin.H{
		"removed_document": name,
		"remaining_count":  len(sess.Documents()),
	})
}

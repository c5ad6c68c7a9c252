package response

import "github.com/gin-gonic/gin"

const (
	CodeOK               = 0
	CodeBadRequest       = 40000
	CodeSessionNotFound  = 40401
	CodeDocumentNotFound = 40402
	CodeSessionExists    = 40901
	CodeDocumentExists   = 40902
	CodeSessionExpired   = 41001
	CodeFileTooLarge     = 41301
	CodeExtractionFailed = 42201
	CodeInternalServer   = 50000
	CodeLLMFailed        = 50201
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}

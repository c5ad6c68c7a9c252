package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pdfchat/internal/bootstrap"
	"pdfchat/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), cors.Default())

	timeout := app.Config.SessionTimeout()
	sessionHandler := handler.NewSessionHandler(app.Registry, timeout)
	documentHandler := handler.NewDocumentHandler(app.Registry, timeout, app.Config.Upload)
	chatHandler := handler.NewChatHandler(app.Registry, timeout)
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/healthz", healthHandler.Check)

	v1 := router.Group("/api/v1")
	sessions := v1.Group("/sessions")
	sessions.POST("", sessionHandler.Create)
	sessions.GET("", sessionHandler.List)
	sessions.GET("/:id", sessionHandler.Get)
	sessions.DELETE("/:id", sessionHandler.Delete)

	sessions.POST("/:id/documents", documentHandler.Upload)
	sessions.GET("/:id/documents", documentHandler.List)
	sessions.DELETE("/:id/documents/:name", documentHandler.Delete)

	sessions.POST("/:id/chat", chatHandler.Send)
	sessions.GET("/:id/history", chatHandler.History)
	sessions.DELETE("/:id/history", chatHandler.Clear)
	sessions.GET("/:id/stats", chatHandler.Stats)

	return router
}

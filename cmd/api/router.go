package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.GET("/login", h.authHandler.Login)
			auth.GET("/callback", h.authHandler.Callback)
			auth.GET("/session", h.authHandler.Session)
			auth.POST("/logout", h.authHandler.Logout)
		}

		// Gemini-backed operations
		api.POST("/analyze-sentiment", h.analysisHandler.AnalyzeSentiment)
		api.POST("/generate", h.emailHandler.GenerateReply)
		api.POST("/summarize", h.emailHandler.Summarize)
		api.POST("/tasks", h.taskHandler.ExtractTasks)
	}

	// LINE webhook (signature-verified, outside the /api group)
	r.POST("/line/webhook", h.webhookHandler.HandleWebhook)
}

package api

import (
	analysisDelivery "embox-backend/internal/analysis/delivery"
	analysisUsecasePkg "embox-backend/internal/analysis/usecase"
	authDelivery "embox-backend/internal/auth/delivery"
	authUsecasePkg "embox-backend/internal/auth/usecase"
	botDelivery "embox-backend/internal/bot/delivery"
	botUsecasePkg "embox-backend/internal/bot/usecase"
	emailDelivery "embox-backend/internal/email/delivery"
	emailUsecasePkg "embox-backend/internal/email/usecase"
	taskDelivery "embox-backend/internal/task/delivery"
	taskUsecasePkg "embox-backend/internal/task/usecase"
	"embox-backend/pkg/line"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler wires the feature handlers into one HTTP server.
type Handler struct {
	authHandler     *authDelivery.AuthHandler
	analysisHandler *analysisDelivery.AnalysisHandler
	emailHandler    *emailDelivery.EmailHandler
	taskHandler     *taskDelivery.TaskHandler
	webhookHandler  *botDelivery.WebhookHandler
}

func NewHandler(
	authUsecase authUsecasePkg.AuthUsecase,
	analysisUsecase analysisUsecasePkg.AnalysisUsecase,
	emailUsecase emailUsecasePkg.EmailUsecase,
	taskUsecase taskUsecasePkg.TaskUsecase,
	dispatcher *botUsecasePkg.Dispatcher,
	lineClient *line.Client,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		authHandler:     authDelivery.NewAuthHandler(authUsecase, logger),
		analysisHandler: analysisDelivery.NewAnalysisHandler(analysisUsecase, logger),
		emailHandler:    emailDelivery.NewEmailHandler(emailUsecase, logger),
		taskHandler:     taskDelivery.NewTaskHandler(taskUsecase, logger),
		webhookHandler:  botDelivery.NewWebhookHandler(lineClient, dispatcher, logger),
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, X-Line-Signature, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)

	return r.Run(addr)
}

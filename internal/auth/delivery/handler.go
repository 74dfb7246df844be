package delivery

import (
	"net/http"

	"embox-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the OAuth login/callback flow over HTTP.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	logger      *zap.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger,
	}
}

// GET /api/auth/login?userId=<chat user id>
func (h *AuthHandler) Login(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter is required"})
		return
	}

	url, err := h.authUsecase.LoginURL(userID)
	if err != nil {
		h.logger.Error("failed to build login URL", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build login URL"})
		return
	}

	c.Redirect(http.StatusFound, url)
}

// GET /api/auth/callback?code=...&state=...
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and state query parameters are required"})
		return
	}

	if _, err := h.authUsecase.HandleCallback(c.Request.Context(), code, state); err != nil {
		h.logger.Warn("authorization callback failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google authorization failed"})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// GET /api/auth/session?userId=<chat user id>
//
// Reports whether a credential is held. The token itself is never returned.
func (h *AuthHandler) Session(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter is required"})
		return
	}

	ok, err := h.authUsecase.HasCredential(userID)
	if err != nil {
		h.logger.Error("failed to look up credential", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up credential"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// LogoutRequest is the POST /api/auth/logout body.
type LogoutRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.Logout(req.UserID); err != nil {
		h.logger.Error("failed to drop credential", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/workplan/workplan/pkg/auth"
	"github.com/workplan/workplan/pkg/config"
)

type AuthHandler struct {
	tokens *auth.TokenManager
	cfg    *config.AuthConfig
	logger *zap.Logger
}

func NewAuthHandler(tokens *auth.TokenManager, cfg *config.AuthConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{tokens: tokens, cfg: cfg, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.AdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		h.logger.Warn("failed login attempt", zap.String("username", req.Username))
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Generate(req.Username, "admin")
	if err != nil {
		h.logger.Error("failed to sign token", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

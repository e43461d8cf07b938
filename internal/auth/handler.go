// File: internal/auth/handler.go
package auth

import (
	"net/http"

	"profolio_backend/internal/common"
	"profolio_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler holds dependencies for token-related endpoints.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// RegisterRoutes sets up the token verification route. The auth middleware
// is applied by the caller.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.GET("/verify", authMW, h.verify)
}

// verify reports the claims of an already-authenticated request. The auth
// middleware has done the actual verification by the time this runs.
func (h *Handler) verify(c *gin.Context) {
	claims := middleware.GetUserClaimsFromContext(c)
	if claims == nil {
		h.logger.Error("Claims missing from context on verified route", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrInternalServer)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": claims})
}

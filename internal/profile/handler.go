// File: internal/profile/handler.go
package profile

import (
	"net/http"

	"profolio_backend/internal/common"
	"profolio_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for profile handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the profile routes. Both require authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	profileGroup := router.Group("/profile", authMW)
	{
		profileGroup.GET("", h.getProfile)
		profileGroup.PUT("", h.updateProfile)
	}
}

func (h *Handler) getProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		h.logger.Error("User ID missing from context on authenticated route", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrInternalServer)
		return
	}

	p, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) updateProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		h.logger.Error("User ID missing from context on authenticated route", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrInternalServer)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Profile update: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Request body must be a JSON object of profile fields."))
		return
	}

	p, err := h.service.Update(c.Request.Context(), userID, middleware.GetUserEmailFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

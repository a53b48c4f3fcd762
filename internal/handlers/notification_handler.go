package handlers

import (
	"net/http"

	"resolvenow_backend/internal/middleware"
	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/repositories"
	"resolvenow_backend/internal/services"
	"resolvenow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PUT("/read-all", h.MarkAllAsRead)
		notifications.PUT("/:id/read", h.MarkAsRead)

		admin := notifications.Group("")
		admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
		{
			admin.POST("/global", h.Broadcast)
		}
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, _, ok := h.Identity(c)
	if !ok {
		return
	}

	var criteria repositories.NotificationCriteria
	if !h.BindQuery(c, &criteria) {
		return
	}

	resp, err := h.notificationService.List(userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": resp})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, _, ok := h.Identity(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, _, ok := h.Identity(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, _, ok := h.Identity(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) Broadcast(c *gin.Context) {
	userID, _, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.BroadcastRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	recipients, err := h.notificationService.SendGlobalNotification(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Broadcast sent",
		"recipients": recipients,
	})
}

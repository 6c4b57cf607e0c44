package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/style-gallery-api/internal/application"
	"github.com/oksasatya/style-gallery-api/pkg/response"
)

type NotificationHandler struct {
	Svc    *application.NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc *application.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

// List GET /api/notifications?limit=&offset=
func (h *NotificationHandler) List(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	page, err := h.Svc.List(c.Request.Context(), currentUser(c), q.Limit, q.Offset)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to get notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"notifications": newNotifications(page.Items),
		"unreadCount":   page.UnreadCount,
	}, "", nil)
}

// MarkRead PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Svc.MarkRead(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, h.Logger, err, "Failed to update notification")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notificationId": c.Param("id")}, "Notification marked as read", nil)
}

// MarkAllRead PATCH /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.Svc.MarkAllRead(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to update notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": n}, "All notifications marked as read", nil)
}

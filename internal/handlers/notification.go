package handlers

import (
	"net/http"
	"yuepai/internal/middleware"
	"yuepai/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications NotificationStore
}

func NewNotificationHandler(notifications NotificationStore) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	notifications, err := h.notifications.List(c.Request.Context(), user.ID)
	if err != nil {
		code, msg := errorMessage(c, err)
		RenderError(c, code, msg)
		return
	}

	Render(c, http.StatusOK, "notification/list.html", gin.H{
		"Title":         "通知",
		"Notifications": notifications,
		"Active":        "notifications",
	})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	found, err := h.notifications.MarkRead(c.Request.Context(), id, user.ID)
	if err != nil {
		code, msg := errorMessage(c, err)
		Fail(c, code, msg)
		return
	}
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

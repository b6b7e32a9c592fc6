package handler

import (
	"net/http"

	"SocialConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List 自己的通知，新的在前
func (h *NotificationHandler) List(c *gin.Context) {
	page, size := pageParams(c)

	items, total, err := h.svc.List(c.Request.Context(), currentUser(c).ID, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": items, "total": total})
}

// MarkRead 标记已读；重复标记不报错，别人的通知一律 404
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.MarkRead(c.Request.Context(), currentUser(c).ID, id); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	marked, err := h.svc.MarkAllRead(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked_count": marked})
}

func (h *NotificationHandler) Counts(c *gin.Context) {
	unread, total, err := h.svc.Counts(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": unread, "total_count": total})
}

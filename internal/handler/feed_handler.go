package handler

import (
	"net/http"

	"SocialConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	svc *service.FeedService
}

func NewFeedHandler(svc *service.FeedService) *FeedHandler {
	return &FeedHandler{svc: svc}
}

// Feed 关注的人 + 自己的帖子，时间倒序
func (h *FeedHandler) Feed(c *gin.Context) {
	page, size := pageParams(c)

	posts, total, err := h.svc.GetFeed(c.Request.Context(), currentUser(c).ID, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": total})
}

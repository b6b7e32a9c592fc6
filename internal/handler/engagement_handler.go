package handler

import (
	"net/http"

	"SocialConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	svc *service.EngagementService
}

func NewEngagementHandler(svc *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{svc: svc}
}

// Like 点赞，作者会收到通知
func (h *EngagementHandler) Like(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.svc.Like(c.Request.Context(), currentUser(c), postID); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "ok"})
}

func (h *EngagementHandler) Unlike(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Unlike(c.Request.Context(), currentUser(c).ID, postID); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// LikeStatus 当前用户是否点过赞 + 实时点赞数
func (h *EngagementHandler) LikeStatus(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	viewerID := uint64(0)
	if u := currentUser(c); u != nil {
		viewerID = u.ID
	}
	isLiked, count, err := h.svc.LikeStatus(c.Request.Context(), viewerID, postID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_liked": isLiked, "like_count": count})
}

type CreateCommentReq struct {
	Content string `json:"content"`
}

// CreateComment 评论，作者会收到通知
func (h *EngagementHandler) CreateComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	comment, err := h.svc.CreateComment(c.Request.Context(), currentUser(c), postID, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ListComments 帖子评论，时间正序分页
func (h *EngagementHandler) ListComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, size := pageParams(c)

	comments, total, err := h.svc.ListComments(c.Request.Context(), postID, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments, "total": total})
}

// DeleteComment 评论作者或帖子作者可删
func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentID")
	if !ok {
		return
	}

	if err := h.svc.DeleteComment(c.Request.Context(), currentUser(c), postID, commentID); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

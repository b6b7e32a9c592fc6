package handler

import (
	"net/http"
	"strconv"

	"SocialConnect/internal/repository/mysql"
	"SocialConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// boolQuery 解析 is_active=true/false，没传返回 nil 表示不过滤
func boolQuery(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, size := pageParams(c)
	f := mysql.UserFilter{
		Search:   c.Query("search"),
		Role:     c.Query("role"),
		IsActive: boolQuery(c, "is_active"),
	}

	users, total, err := h.svc.ListUsers(c.Request.Context(), f, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

func (h *AdminHandler) UserDetail(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.svc.UserDetail(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": detail})
}

type AdminUpdateUserReq struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// UpdateUser 改角色或启停账号；管理员不能停用自己
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AdminUpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), currentUser(c).ID, userID, req.Role, req.IsActive)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AdminHandler) ListPosts(c *gin.Context) {
	page, size := pageParams(c)
	authorID, _ := strconv.ParseUint(c.Query("author_id"), 10, 64)
	f := mysql.PostFilter{
		Category: c.Query("category"),
		AuthorID: authorID,
		Search:   c.Query("search"),
		IsActive: boolQuery(c, "is_active"),
	}

	posts, total, err := h.svc.ListPosts(c.Request.Context(), f, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": total})
}

func (h *AdminHandler) PostDetail(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.svc.PostDetail(c.Request.Context(), postID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost 管理员可软删任意帖子
func (h *AdminHandler) DeletePost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePost(c.Request.Context(), postID); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Stats 平台统计，请求时现算，不做物化
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

package handler

import (
	"io"
	"net/http"
	"strconv"

	"SocialConnect/internal/model"
	"SocialConnect/internal/pkg"
	"SocialConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc  *service.PostService
	feedSvc  *service.FeedService
	uploader *pkg.S3Uploader
}

func NewPostHandler(postSvc *service.PostService, feedSvc *service.FeedService, uploader *pkg.S3Uploader) *PostHandler {
	return &PostHandler{postSvc: postSvc, feedSvc: feedSvc, uploader: uploader}
}

// uploadImage 可选的帖子配图，multipart 字段名 image
func (h *PostHandler) uploadImage(c *gin.Context, ownerID uint64) (string, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", true // 没带图不算错
	}

	if h.uploader == nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "image upload is not enabled"})
		return "", false
	}
	if err := pkg.ValidateImage(fh.Filename, fh.Size, pkg.MaxPostImageSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		respondErr(c, err)
		return "", false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondErr(c, err)
		return "", false
	}

	url, err := h.uploader.Upload(c.Request.Context(), data, "posts", ownerID, fh.Filename)
	if err != nil {
		respondErr(c, err)
		return "", false
	}
	return url, true
}

// Create 发帖；multipart 表单：content、category、可选 image
func (h *PostHandler) Create(c *gin.Context) {
	user := currentUser(c)

	imageURL, ok := h.uploadImage(c, user.ID)
	if !ok {
		return
	}

	post, err := h.postSvc.Create(c.Request.Context(), user.ID, c.PostForm("content"), c.PostForm("category"), imageURL)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// List 公开帖子列表，支持 category/author_id/search 过滤
func (h *PostHandler) List(c *gin.Context) {
	authorID, _ := strconv.ParseUint(c.Query("author_id"), 10, 64)
	page, size := pageParams(c)

	posts, total, err := h.postSvc.List(c.Request.Context(), c.Query("category"), authorID, c.Query("search"), page, size)
	if err != nil {
		respondErr(c, err)
		return
	}

	viewerID := uint64(0)
	if u := currentUser(c); u != nil {
		viewerID = u.ID
	}
	annotated, err := h.feedSvc.Annotate(c.Request.Context(), viewerID, posts)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": annotated, "total": total})
}

// Mine 自己的帖子
func (h *PostHandler) Mine(c *gin.Context) {
	user := currentUser(c)
	page, size := pageParams(c)

	posts, total, err := h.postSvc.ListByAuthor(c.Request.Context(), user.ID, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}

	annotated, err := h.feedSvc.Annotate(c.Request.Context(), user.ID, posts)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": annotated, "total": total})
}

// Detail 帖子详情，带实时计数与点赞状态
func (h *PostHandler) Detail(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.postSvc.GetActive(c.Request.Context(), postID)
	if err != nil {
		respondErr(c, err)
		return
	}

	viewerID := uint64(0)
	if u := currentUser(c); u != nil {
		viewerID = u.ID
	}
	annotated, err := h.feedSvc.Annotate(c.Request.Context(), viewerID, []model.Post{*post})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": annotated[0]})
}

type UpdatePostReq struct {
	Content  string `json:"content"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

// Update 仅作者可改
func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.postSvc.Update(c.Request.Context(), currentUser(c).ID, postID, req.Content, req.Category, req.ImageURL)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// Delete 仅作者可删，软删除
func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.postSvc.Delete(c.Request.Context(), currentUser(c).ID, postID); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

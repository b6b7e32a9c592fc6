package handler

import (
	"io"
	"net/http"

	"SocialConnect/internal/model"
	"SocialConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc   *service.UserService
	followSvc *service.FollowService
}

func NewUserHandler(userSvc *service.UserService, followSvc *service.FollowService) *UserHandler {
	return &UserHandler{userSvc: userSvc, followSvc: followSvc}
}

// RegisterReq 注册请求体
type RegisterReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyEmailReq struct {
	Email string `json:"email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type LoginReq struct {
	Identifier string `json:"identifier"` // 用户名或邮箱
	Password   string `json:"password"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ResetConfirmReq 忘记密码确认请求体
type ResetConfirmReq struct {
	Email       string `json:"email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password"`
}

// Register 注册接口，成功后发送邮箱验证码
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "ok", "user": user})
}

// VerifyEmail 校验邮箱验证码
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.userSvc.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Login 登录接口，identifier 可传用户名或邮箱
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, pair, err := h.userSvc.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	user := currentUser(c)
	if err := h.userSvc.Logout(user.ID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Refresh 用 refresh token 换新的令牌对
func (h *UserHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	pair, err := h.userSvc.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user := currentUser(c)
	if err := h.userSvc.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// RequestPasswordReset 申请重置验证码；不泄露账号是否存在
func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.userSvc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "if the email exists, a reset code has been sent"})
}

func (h *UserHandler) ConfirmPasswordReset(c *gin.Context) {
	var req ResetConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.userSvc.ConfirmPasswordReset(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Me 当前登录用户资料及统计
func (h *UserHandler) Me(c *gin.Context) {
	user := currentUser(c)
	followers, following, posts, err := h.userSvc.ProfileStats(c.Request.Context(), user.ID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":            user,
		"followers_count": followers,
		"following_count": following,
		"posts_count":     posts,
	})
}

type UpdateProfileReq struct {
	Bio            *string `json:"bio"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	PrivacySetting *string `json:"privacy_setting"`
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user := currentUser(c)
	updated, err := h.userSvc.UpdateProfile(c.Request.Context(), user.ID, req.Bio, req.Website, req.Location, req.PrivacySetting)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": updated})
}

// UploadAvatar 头像上传，multipart 字段名 avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "avatar file required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondErr(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondErr(c, err)
		return
	}

	user := currentUser(c)
	url, err := h.userSvc.UploadAvatar(c.Request.Context(), user.ID, data, fh.Filename)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// Profile 用户主页；私密及仅粉丝可见要走权限检查
func (h *UserHandler) Profile(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	target, err := h.userSvc.FindByID(c.Request.Context(), targetID)
	if err != nil {
		respondErr(c, err)
		return
	}

	viewer := currentUser(c)
	if err := h.userSvc.CanViewProfile(c.Request.Context(), viewer, target); err != nil {
		respondErr(c, err)
		return
	}

	followers, following, posts, err := h.userSvc.ProfileStats(c.Request.Context(), target.ID)
	if err != nil {
		respondErr(c, err)
		return
	}

	isFollowing := false
	if viewer != nil && viewer.ID != target.ID {
		isFollowing, err = h.followSvc.IsFollowing(c.Request.Context(), viewer.ID, target.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":            target,
		"followers_count": followers,
		"following_count": following,
		"posts_count":     posts,
		"is_following":    isFollowing,
	})
}

// Discover 最新注册用户列表，标注关注状态
func (h *UserHandler) Discover(c *gin.Context) {
	user := currentUser(c)
	users, err := h.userSvc.Discover(c.Request.Context(), user.ID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// checkProfileAccess 粉丝/关注列表复用主页的可见性规则
func (h *UserHandler) checkProfileAccess(c *gin.Context, targetID uint64) (*model.User, bool) {
	target, err := h.userSvc.FindByID(c.Request.Context(), targetID)
	if err != nil {
		respondErr(c, err)
		return nil, false
	}
	if err := h.userSvc.CanViewProfile(c.Request.Context(), currentUser(c), target); err != nil {
		respondErr(c, err)
		return nil, false
	}
	return target, true
}

package handler

import (
	"net/http"

	"SocialConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	followSvc *service.FollowService
	userSvc   *service.UserService
	users     *UserHandler
}

func NewFollowHandler(followSvc *service.FollowService, userSvc *service.UserService, users *UserHandler) *FollowHandler {
	return &FollowHandler{followSvc: followSvc, userSvc: userSvc, users: users}
}

// Follow 关注，成功后会给对方投递通知
func (h *FollowHandler) Follow(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.followSvc.Follow(c.Request.Context(), currentUser(c), targetID); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "ok"})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.followSvc.Unfollow(c.Request.Context(), currentUser(c).ID, targetID); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Followers 粉丝列表，受主页可见性约束
func (h *FollowHandler) Followers(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.users.checkProfileAccess(c, targetID); !ok {
		return
	}

	users, err := h.followSvc.ListFollowers(c.Request.Context(), targetID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

// Following 关注列表，受主页可见性约束
func (h *FollowHandler) Following(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.users.checkProfileAccess(c, targetID); !ok {
		return
	}

	users, err := h.followSvc.ListFollowing(c.Request.Context(), targetID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

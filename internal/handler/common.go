package handler

import (
	"errors"
	"net/http"
	"strconv"

	"SocialConnect/internal/middleware"
	"SocialConnect/internal/model"
	"SocialConnect/internal/pkg"
	"SocialConnect/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func currentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(middleware.ContextUserKey); ok {
		if u, ok2 := v.(*model.User); ok2 {
			return u
		}
	}
	return nil
}

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid " + name})
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page"))
	size, _ = strconv.Atoi(c.Query("page_size"))
	return page, size
}

// respondErr 业务错误统一映射 HTTP 状态码；未知错误 500 并记日志
func respondErr(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"msg": ve.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrAuthRequired), errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrSelfLike),
		errors.Is(err, service.ErrAlreadyLiked),
		errors.Is(err, service.ErrNotLiked),
		errors.Is(err, service.ErrBadCode),
		errors.Is(err, service.ErrSelfDeactivate):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		pkg.Log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
	}
}

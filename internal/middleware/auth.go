package middleware

import (
	"net/http"
	"strings"

	"SocialConnect/internal/model"
	"SocialConnect/internal/pkg"
	"SocialConnect/internal/repository/mysql"
	"SocialConnect/internal/repository/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "current_user"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// resolveUser 校验 token + redis 单会话，成功后顺延会话并加载用户
func resolveUser(c *gin.Context, db *gorm.DB, tokenStr string) (*model.User, bool) {
	claims, err := pkg.ParseAccess(tokenStr)
	if err != nil {
		return nil, false
	}

	sessionRep := &redis.SessionRepository{}
	originToken, err := sessionRep.GetToken(claims.UserID)
	if err != nil || originToken != tokenStr {
		return nil, false
	}
	if err = sessionRep.ExtendToken(claims.UserID); err != nil {
		return nil, false
	}

	userRepo := &mysql.UserRepository{DB: db}
	user, err := userRepo.FindByID(claims.UserID)
	if err != nil || !user.IsActive {
		return nil, false
	}
	return user, true
}

func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "missing or malformed authorization header"})
			return
		}

		user, ok := resolveUser(c, db, tokenStr)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// OptionalAuth 公开接口用：带合法 token 则注入用户，否则按匿名放行
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if user, ok := resolveUser(c, db, tokenStr); ok {
				c.Set(ContextUserIDKey, user.ID)
				c.Set(ContextUserKey, user)
			}
		}
		c.Next()
	}
}

// RequireAdmin 放在 AuthMiddleware 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ContextUserKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
			return
		}
		user := v.(*model.User)
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "admin access required"})
			return
		}
		c.Next()
	}
}

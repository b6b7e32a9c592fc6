package router

import (
	"SocialConnect/internal/handler"
	"SocialConnect/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handlers struct {
	User         *handler.UserHandler
	Follow       *handler.FollowHandler
	Post         *handler.PostHandler
	Engagement   *handler.EngagementHandler
	Feed         *handler.FeedHandler
	Notification *handler.NotificationHandler
	Admin        *handler.AdminHandler
}

func InitRouter(db *gorm.DB, h Handlers) *gin.Engine {
	r := gin.Default()

	auth := middleware.AuthMiddleware(db)
	optional := middleware.OptionalAuth(db)

	// 认证相关接口
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.User.Register)
		authGroup.POST("/verify-email", h.User.VerifyEmail)
		authGroup.POST("/login", h.User.Login)
		authGroup.POST("/logout", auth, h.User.Logout)
		authGroup.POST("/token/refresh", h.User.Refresh)
		authGroup.POST("/change-password", auth, h.User.ChangePassword)
		authGroup.POST("/password-reset", h.User.RequestPasswordReset)
		authGroup.POST("/password-reset/confirm", h.User.ConfirmPasswordReset)
	}

	// 用户与关注接口
	userGroup := r.Group("/api/users")
	{
		userGroup.GET("/me", auth, h.User.Me)
		userGroup.PUT("/me", auth, h.User.UpdateMe)
		userGroup.POST("/me/avatar", auth, h.User.UploadAvatar)
		userGroup.GET("/discover", auth, h.User.Discover)
		userGroup.GET("/:id", optional, h.User.Profile)
		userGroup.POST("/:id/follow", auth, h.Follow.Follow)
		userGroup.DELETE("/:id/follow", auth, h.Follow.Unfollow)
		userGroup.GET("/:id/followers", optional, h.Follow.Followers)
		userGroup.GET("/:id/following", optional, h.Follow.Following)
	}

	// 帖子与互动接口
	postGroup := r.Group("/api/posts")
	{
		postGroup.POST("", auth, h.Post.Create)
		postGroup.GET("", optional, h.Post.List)
		postGroup.GET("/me", auth, h.Post.Mine)
		postGroup.GET("/:id", optional, h.Post.Detail)
		postGroup.PUT("/:id", auth, h.Post.Update)
		postGroup.DELETE("/:id", auth, h.Post.Delete)
		postGroup.POST("/:id/like", auth, h.Engagement.Like)
		postGroup.DELETE("/:id/like", auth, h.Engagement.Unlike)
		postGroup.GET("/:id/like", optional, h.Engagement.LikeStatus)
		postGroup.GET("/:id/comments", h.Engagement.ListComments)
		postGroup.POST("/:id/comments", auth, h.Engagement.CreateComment)
		postGroup.DELETE("/:id/comments/:commentID", auth, h.Engagement.DeleteComment)
	}

	r.GET("/api/feed", auth, h.Feed.Feed)

	// 通知接口
	notifGroup := r.Group("/api/notifications", auth)
	{
		notifGroup.GET("", h.Notification.List)
		notifGroup.POST("/:id/read", h.Notification.MarkRead)
		notifGroup.POST("/mark-all-read", h.Notification.MarkAllRead)
		notifGroup.GET("/count", h.Notification.Counts)
	}

	// 管理后台接口
	adminGroup := r.Group("/api/admin", auth, middleware.RequireAdmin())
	{
		adminGroup.GET("/users", h.Admin.ListUsers)
		adminGroup.GET("/users/:id", h.Admin.UserDetail)
		adminGroup.PUT("/users/:id", h.Admin.UpdateUser)
		adminGroup.GET("/posts", h.Admin.ListPosts)
		adminGroup.GET("/posts/:id", h.Admin.PostDetail)
		adminGroup.DELETE("/posts/:id", h.Admin.DeletePost)
		adminGroup.GET("/stats", h.Admin.Stats)
	}

	return r
}

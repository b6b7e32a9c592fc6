package main

import (
	"context"

	"SocialConnect/internal/config"
	"SocialConnect/internal/handler"
	"SocialConnect/internal/model"
	"SocialConnect/internal/pkg"
	"SocialConnect/internal/repository/mysql"
	"SocialConnect/internal/repository/redis"
	"SocialConnect/internal/router"
	"SocialConnect/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	pkg.InitLogger(cfg.LogLevel, cfg.LogFile)
	defer pkg.Log.Sync()

	pkg.SetSecrets(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		pkg.Log.Fatal("mysql connect failed", zap.Error(err))
	}

	// 连接 redis（会话 + 邮箱验证码）
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		pkg.Log.Fatal("redis connect failed", zap.Error(err))
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
		&model.Notification{},
	); err != nil {
		pkg.Log.Fatal("auto migrate failed", zap.Error(err))
	}

	// 没配 broker 就退化成纯日志模式
	var publisher pkg.RealtimePublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := pkg.NewKafkaPublisher(pkg.KafkaConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
		defer kp.Close()
		publisher = kp
	}

	// 没配 bucket 就关闭图片上传
	var uploader *pkg.S3Uploader
	if cfg.S3Bucket != "" {
		up, err := pkg.NewS3Uploader(context.Background(), cfg.S3Region, cfg.S3Bucket, cfg.S3BaseURL)
		if err != nil {
			pkg.Log.Fatal("s3 init failed", zap.Error(err))
		}
		uploader = up
	}

	emailSvc := service.NewEmailService(pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	notificationSvc := service.NewNotificationService(mysql.DB, publisher)
	userSvc := service.NewUserService(mysql.DB, emailSvc, uploader)
	followSvc := service.NewFollowService(mysql.DB, notificationSvc)
	postSvc := service.NewPostService(mysql.DB)
	engagementSvc := service.NewEngagementService(mysql.DB, notificationSvc)
	feedSvc := service.NewFeedService(mysql.DB)
	adminSvc := service.NewAdminService(mysql.DB)

	userHandler := handler.NewUserHandler(userSvc, followSvc)
	h := router.Handlers{
		User:         userHandler,
		Follow:       handler.NewFollowHandler(followSvc, userSvc, userHandler),
		Post:         handler.NewPostHandler(postSvc, feedSvc, uploader),
		Engagement:   handler.NewEngagementHandler(engagementSvc),
		Feed:         handler.NewFeedHandler(feedSvc),
		Notification: handler.NewNotificationHandler(notificationSvc),
		Admin:        handler.NewAdminHandler(adminSvc),
	}

	r := router.InitRouter(mysql.DB, h)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		pkg.Log.Fatal("server exited", zap.Error(err))
	}
}

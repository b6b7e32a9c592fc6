package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"SocialConnect/internal/model"
	"SocialConnect/internal/pkg"
	"SocialConnect/internal/repository/mysql"
	"SocialConnect/internal/repository/redis"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo       *mysql.UserRepository
	followRepo *mysql.FollowRepository
	postRepo   *mysql.PostRepository
	rSession   *redis.SessionRepository
	emailSvc   *EmailService
	uploader   *pkg.S3Uploader
}

func NewUserService(db *gorm.DB, emailSvc *EmailService, uploader *pkg.S3Uploader) *UserService {
	return &UserService{
		repo:       &mysql.UserRepository{DB: db},
		followRepo: &mysql.FollowRepository{DB: db},
		postRepo:   &mysql.PostRepository{DB: db},
		rSession:   &redis.SessionRepository{},
		emailSvc:   emailSvc,
		uploader:   uploader,
	}
}

// Register 注册成功后发送验证码邮件；发信失败不阻塞注册
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || len(password) < 8 {
		return nil, valErr("username, email and a password of at least 8 characters are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:       username,
		Email:          email,
		Password:       string(hash),
		Role:           model.RoleUser,
		PrivacySetting: model.PrivacyPublic,
		IsActive:       true,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, valErr("username or email already taken")
	}

	if err := s.emailSvc.SendVerifyCode(email, username); err != nil {
		pkg.Log.Warn("verification email failed", zap.String("email", email), zap.Error(err))
	}
	return user, nil
}

func (s *UserService) VerifyEmail(ctx context.Context, email, code string) error {
	if err := s.emailSvc.VerifyCode(redis.ScopeVerify, email, code); err != nil {
		return err
	}
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return ErrNotFound
	}
	return s.repo.MarkEmailVerified(user.ID)
}

// Login identifier 支持用户名或邮箱；token 写入 redis 实现单会话
func (s *UserService) Login(ctx context.Context, identifier, password string) (*model.User, *pkg.Pair, error) {
	user, err := s.repo.FindByIdentifier(identifier)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrForbidden
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := pkg.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}
	if err = s.rSession.AddToken(user.ID, pair.AccessToken); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	_ = s.repo.TouchLastLogin(user.ID, now)
	user.LastLoginAt = &now
	return user, pair, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.rSession.DeleteToken(userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if err = s.rSession.AddToken(claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return valErr("old password is incorrect")
	}
	if len(newPassword) < 8 {
		return valErr("new password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(userID, string(hash))
}

// RequestPasswordReset 不暴露账号是否存在：查不到也返回成功
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	if _, err := s.repo.FindByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.emailSvc.SendResetCode(email)
}

func (s *UserService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	if err := s.emailSvc.VerifyCode(redis.ScopeReset, email, code); err != nil {
		return err
	}
	if len(newPassword) < 8 {
		return valErr("new password must be at least 8 characters")
	}
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user.ID, string(hash))
}

func (s *UserService) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// CanViewProfile 隐私检查，viewer 为 nil 表示匿名访问
func (s *UserService) CanViewProfile(ctx context.Context, viewer *model.User, target *model.User) error {
	if viewer != nil && viewer.ID == target.ID {
		return nil
	}
	switch target.PrivacySetting {
	case model.PrivacyPrivate:
		return ErrForbidden
	case model.PrivacyFollowersOnly:
		if viewer == nil {
			return ErrAuthRequired
		}
		following, err := s.followRepo.IsFollowing(ctx, viewer.ID, target.ID)
		if err != nil {
			return err
		}
		if !following {
			return ErrForbidden
		}
	}
	return nil
}

// ProfileStats 关注数/粉丝数/活跃帖子数，读取时实时统计
func (s *UserService) ProfileStats(ctx context.Context, userID uint64) (followers, following, posts int64, err error) {
	if followers, err = s.followRepo.CountFollowers(ctx, userID); err != nil {
		return
	}
	if following, err = s.followRepo.CountFollowing(ctx, userID); err != nil {
		return
	}
	posts, err = s.postRepo.CountActiveByAuthor(ctx, userID)
	return
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, bio, website, location, privacy *string) (*model.User, error) {
	fields := map[string]any{}
	if bio != nil {
		fields["bio"] = *bio
	}
	if website != nil {
		fields["website"] = *website
	}
	if location != nil {
		fields["location"] = *location
	}
	if privacy != nil {
		switch *privacy {
		case model.PrivacyPublic, model.PrivacyPrivate, model.PrivacyFollowersOnly:
			fields["privacy_setting"] = *privacy
		default:
			return nil, valErr("invalid privacy setting")
		}
	}
	if err := s.repo.UpdateProfile(userID, fields); err != nil {
		return nil, err
	}
	return s.repo.FindByID(userID)
}

// UploadAvatar 校验后传对象存储，回填 avatar_url
func (s *UserService) UploadAvatar(ctx context.Context, userID uint64, data []byte, filename string) (string, error) {
	if s.uploader == nil {
		return "", errors.New("object storage not configured")
	}
	if err := pkg.ValidateImage(filename, int64(len(data)), pkg.MaxAvatarSize); err != nil {
		return "", err
	}
	url, err := s.uploader.Upload(ctx, data, "avatars", userID, filename)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateAvatar(userID, url); err != nil {
		return "", err
	}
	return url, nil
}

type DiscoverUser struct {
	model.User
	IsFollowing bool `json:"is_following"`
}

// Discover 最新注册的 20 个用户，标注我是否已关注
func (s *UserService) Discover(ctx context.Context, viewerID uint64) ([]DiscoverUser, error) {
	users, err := s.repo.ListDiscover(viewerID, 20)
	if err != nil {
		return nil, err
	}
	followingIDs, err := s.followRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	followed := make(map[uint64]bool, len(followingIDs))
	for _, id := range followingIDs {
		followed[id] = true
	}

	out := make([]DiscoverUser, 0, len(users))
	for _, u := range users {
		out = append(out, DiscoverUser{User: u, IsFollowing: followed[u.ID]})
	}
	return out, nil
}

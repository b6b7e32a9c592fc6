package service

import (
	"SocialConnect/internal/pkg"
	"SocialConnect/internal/repository/redis"
)

type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.EmailCodeRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.EmailCodeRepository{}}
}

// SendVerifyCode 注册邮箱验证码：先写 pending，发信成功后提升为 confirmed
func (s *EmailService) SendVerifyCode(email, username string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.rds.SetPending(redis.ScopeVerify, email, code); err != nil {
		return err
	}

	html := pkg.VerifyEmailHTML(username, code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, "Verify your SocialConnect account", html); err != nil {
		_ = s.rds.DeletePending(redis.ScopeVerify, email)
		return err
	}

	if err = s.rds.Confirm(redis.ScopeVerify, email); err != nil {
		_ = s.rds.DeletePending(redis.ScopeVerify, email)
		return err
	}
	return nil
}

// SendResetCode 密码重置验证码，流程同上
func (s *EmailService) SendResetCode(email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.rds.SetPending(redis.ScopeReset, email, code); err != nil {
		return err
	}

	html := pkg.ResetPasswordHTML(code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, "Reset your SocialConnect password", html); err != nil {
		_ = s.rds.DeletePending(redis.ScopeReset, email)
		return err
	}

	if err = s.rds.Confirm(redis.ScopeReset, email); err != nil {
		_ = s.rds.DeletePending(redis.ScopeReset, email)
		return err
	}
	return nil
}

// VerifyCode 校验通过即删，验证码一次性
func (s *EmailService) VerifyCode(scope, email, code string) error {
	val, err := s.rds.GetConfirmed(scope, email)
	if err != nil {
		return ErrBadCode
	}
	if val != code {
		return ErrBadCode
	}
	return s.rds.DeleteConfirmed(scope, email)
}

package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	PrivacyPublic        = "public"
	PrivacyPrivate       = "private"
	PrivacyFollowersOnly = "followers_only"
)

type User struct {
	ID              uint64     `gorm:"primaryKey" json:"id"`
	Username        string     `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Email           string     `gorm:"uniqueIndex;size:64;not null" json:"email"`
	Password        string     `gorm:"size:255;not null" json:"-"`
	Role            string     `gorm:"size:10;not null;default:user" json:"role"`
	Bio             string     `gorm:"type:text" json:"bio"`
	AvatarURL       string     `gorm:"size:255" json:"avatar_url"`
	Website         string     `gorm:"size:255" json:"website"`
	Location        string     `gorm:"size:255" json:"location"`
	PrivacySetting  string     `gorm:"size:15;not null;default:public" json:"privacy_setting"`
	IsEmailVerified bool       `gorm:"not null;default:false" json:"is_email_verified"`
	IsActive        bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

package service

import "errors"

// 业务错误集中定义，handler 层据此映射 HTTP 状态码
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthRequired       = errors.New("authentication required")

	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")

	ErrSelfLike     = errors.New("cannot like your own post")
	ErrAlreadyLiked = errors.New("already liked this post")
	ErrNotLiked     = errors.New("post not liked")

	ErrSelfDeactivate = errors.New("cannot deactivate your own account")

	ErrBadCode = errors.New("invalid or expired code")
)

// ValidationError 输入不合法，handler 层映射为 400
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func valErr(msg string) error { return &ValidationError{msg: msg} }

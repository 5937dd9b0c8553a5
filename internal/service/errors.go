package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBlogNotFound       = errors.New("blog not found")
	ErrForbidden          = errors.New("not allowed to modify this blog")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError marks a request rejected before touching storage
type ValidationError string

// Error returns the human-readable message
func (e ValidationError) Error() string { return string(e) }

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quill/internal/model/auth"
	httputil "quill/internal/pkg/http"
	"quill/internal/service"
)

// ErrorResponse is the shared error body
type ErrorResponse = httputil.ErrorResponse

// UserInfo is the user projection returned by the auth endpoints. The
// password hash never appears here.
type UserInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	Bio       string `json:"bio,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// toUserInfo converts a User entity to its response projection
func toUserInfo(user *auth.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

// writeError maps service errors to status codes and error bodies
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := 50001

	switch {
	case service.IsValidation(err):
		status = http.StatusBadRequest
		code = 40001
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
		status = http.StatusBadRequest
		code = 40002
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		code = 40103
	case errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
		code = 40401
	case errors.Is(err, service.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
		code = 50301
	}

	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

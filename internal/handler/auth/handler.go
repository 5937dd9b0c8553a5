package auth

import (
	"quill/internal/service"
)

// Handler serves the /api/auth endpoints
type Handler struct {
	authService *service.AuthService
}

// NewHandler creates the auth handler
func NewHandler(authService *service.AuthService) *Handler {
	return &Handler{
		authService: authService,
	}
}

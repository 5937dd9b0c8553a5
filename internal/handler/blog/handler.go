package blog

import (
	"quill/internal/service"
)

// Handler serves the /api/blogs endpoints
type Handler struct {
	blogService *service.BlogService
}

// NewHandler creates the blog handler
func NewHandler(blogService *service.BlogService) *Handler {
	return &Handler{
		blogService: blogService,
	}
}

package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
	"quill/internal/service"
)

// CreateRequest blog creation payload. Tags is a comma-separated string.
type CreateRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Excerpt  string `json:"excerpt"`
	Tags     string `json:"tags"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// Create stores a new blog for the authenticated author
// @Summary      Create a blog
// @Description  Create a blog; requires the author or admin role
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateRequest  true  "blog fields"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Router       /api/blogs [post]
func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	ident, ok := ctxutil.GetIdentity(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40101,
			Message: "Authentication required",
		})
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Title and content are required",
			Detail:  err.Error(),
		})
		return
	}

	detail, err := h.blogService.Create(ctx, ident.UserID, service.CreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Tags:     req.Tags,
		Category: req.Category,
		Status:   req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Blog created successfully",
		"blog":    toBlogDetail(detail),
	})
}

package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
	"quill/internal/service"
)

// UpdateRequest partial update payload; absent fields are left unchanged.
// Tags, when present, replaces the existing tag list.
type UpdateRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Excerpt  *string `json:"excerpt"`
	Tags     *string `json:"tags"`
	Category *string `json:"category"`
	Status   *string `json:"status"`
}

// Update partially updates a blog; owner or admin only
// @Summary      Update a blog
// @Description  Partially update a blog; owner or admin only
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "blog id"
// @Param        request  body      UpdateRequest  true  "fields to change"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/blogs/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	ident, ok := ctxutil.GetIdentity(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40101,
			Message: "Authentication required",
		})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	detail, err := h.blogService.Update(ctx, c.Param("id"), ident, service.UpdateInput{
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

	c.JSON(http.StatusOK, gin.H{
		"message": "Blog updated successfully",
		"blog":    toBlogDetail(detail),
	})
}

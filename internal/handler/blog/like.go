package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
)

// ToggleLike flips the caller's like on a blog
// @Summary      Toggle like
// @Description  Like or unlike a blog; reader accounts may not call this
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "blog id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/blogs/{id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	ctx := c.Request.Context()
	ident, ok := ctxutil.GetIdentity(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40101,
			Message: "Authentication required",
		})
		return
	}

	likeCount, isLiked, err := h.blogService.ToggleLike(ctx, c.Param("id"), ident.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	message := "Blog unliked"
	if isLiked {
		message = "Blog liked"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   message,
		"likeCount": likeCount,
		"isLiked":   isLiked,
	})
}

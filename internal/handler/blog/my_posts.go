package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
	httputil "quill/internal/pkg/http"
)

// ListMine returns one page of the caller's own blogs, drafts and
// archived included
// @Summary      List my blogs
// @Description  List the authenticated user's blogs regardless of status
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "page number (default 1)"
// @Param        limit  query  int  false  "page size (default 10)"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/blogs/my/posts [get]
func (h *Handler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	ident, ok := ctxutil.GetIdentity(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40101,
			Message: "Authentication required",
		})
		return
	}

	page, limit := parsePagination(c)

	result, err := h.blogService.ListMine(ctx, ident.UserID, page, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blogs":      toBlogSummaryList(result),
		"pagination": httputil.NewPagination(page, limit, result.Total),
	})
}

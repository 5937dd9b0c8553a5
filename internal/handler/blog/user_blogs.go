package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "quill/internal/pkg/http"
	blogrepo "quill/internal/repository/blog"
)

// ListByUser returns one page of a user's published blogs
// @Summary      List a user's blogs
// @Description  List published blogs by a specific author, paginated
// @Tags         blogs
// @Produce      json
// @Param        userId  path   string  true   "author user id"
// @Param        page    query  int     false  "page number (default 1)"
// @Param        limit   query  int     false  "page size (default 10)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /api/blogs/user/{userId} [get]
func (h *Handler) ListByUser(c *gin.Context) {
	page, limit := parsePagination(c)

	ctx := c.Request.Context()
	result, err := h.blogService.List(ctx, blogrepo.ListQuery{
		AuthorID: c.Param("userId"),
		Sort:     blogrepo.SortNewest,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blogs":      toBlogSummaryList(result),
		"pagination": httputil.NewPagination(page, limit, result.Total),
	})
}

package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/blogtext"
	httputil "quill/internal/pkg/http"
	blogrepo "quill/internal/repository/blog"
)

// List returns one page of published blogs
// @Summary      List blogs
// @Description  List published blogs with pagination, filtering and search
// @Tags         blogs
// @Produce      json
// @Param        page      query  int     false  "page number (default 1)"
// @Param        limit     query  int     false  "page size (default 10)"
// @Param        search    query  string  false  "full-text search over title, content and tags"
// @Param        category  query  string  false  "exact category match"
// @Param        author    query  string  false  "author user id"
// @Param        tags      query  string  false  "comma-separated tags, any-of match"
// @Param        sort      query  string  false  "newest (default), oldest, popular or title"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /api/blogs [get]
func (h *Handler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	q := blogrepo.ListQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		AuthorID: c.Query("author"),
		Sort:     c.Query("sort"),
		Page:     page,
		Limit:    limit,
	}
	if tags := c.Query("tags"); tags != "" {
		q.Tags = blogtext.ParseTags(tags)
	}

	ctx := c.Request.Context()
	result, err := h.blogService.List(ctx, q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blogs":      toBlogSummaryList(result),
		"pagination": httputil.NewPagination(page, limit, result.Total),
	})
}

package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get returns a single blog by id. Every read increments the view
// counter, repeated reads included.
// @Summary      Get a blog
// @Description  Fetch a full blog by id and count the view
// @Tags         blogs
// @Produce      json
// @Param        id   path      string  true  "blog id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/blogs/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	detail, err := h.blogService.Get(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blog": toBlogDetail(detail),
	})
}

package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
)

// GetMe returns the authenticated caller's account
// @Summary      Current user
// @Description  Return the authenticated user's account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/auth/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()
	ident, ok := ctxutil.GetIdentity(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40101,
			Message: "Authentication required",
		})
		return
	}

	user, err := h.authService.GetMe(ctx, ident.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": toUserInfo(user),
	})
}

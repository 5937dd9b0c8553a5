package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
)

// maxAvatarSize caps avatar uploads at 5 MiB
const maxAvatarSize = 5 << 20

// UploadAvatar stores an avatar image for the caller
// @Summary      Upload avatar
// @Description  Upload an avatar image and set it on the profile
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "avatar image (jpg/png/gif/webp)"
// @Success      200     {object}  map[string]string
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      503     {object}  ErrorResponse
// @Router       /api/auth/avatar [post]
func (h *Handler) UploadAvatar(c *gin.Context) {
	ctx := c.Request.Context()
	ident, ok := ctxutil.GetIdentity(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40101,
			Message: "Authentication required",
		})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Avatar file is required",
			Detail:  err.Error(),
		})
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Avatar cannot exceed 5 MB",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Failed to read avatar file",
			Detail:  err.Error(),
		})
		return
	}
	defer file.Close()

	url, err := h.authService.UploadAvatar(ctx, ident.UserID, fileHeader.Filename, file)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Avatar uploaded successfully",
		"avatar":  url,
	})
}

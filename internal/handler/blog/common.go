package blog

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"quill/internal/model/auth"
	"quill/internal/model/blog"
	httputil "quill/internal/pkg/http"
	"quill/internal/service"
)

// ErrorResponse is the shared error body
type ErrorResponse = httputil.ErrorResponse

// defaults for the pagination query parameters
const (
	defaultPage  = 1
	defaultLimit = 10
)

// AuthorInfo is the author projection embedded in blog responses
type AuthorInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// LikerInfo is the user projection embedded in a blog's like list
type LikerInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// BlogSummary is the list projection; content is omitted to keep list
// payloads small
type BlogSummary struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Excerpt   string      `json:"excerpt,omitempty"`
	Author    *AuthorInfo `json:"author,omitempty"`
	Tags      []string    `json:"tags"`
	Category  string      `json:"category"`
	Status    string      `json:"status"`
	Featured  bool        `json:"featured"`
	LikeCount int         `json:"likeCount"`
	Views     int64       `json:"views"`
	ReadTime  int         `json:"readTime"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

// BlogDetail is the full projection with content and resolved likes
type BlogDetail struct {
	BlogSummary
	Content string      `json:"content"`
	Likes   []LikerInfo `json:"likes"`
}

// toBlogSummary converts an entity and its resolved author to the list
// projection
func toBlogSummary(b *blog.Blog, author *auth.Summary) BlogSummary {
	s := BlogSummary{
		ID:        b.ID,
		Title:     b.Title,
		Excerpt:   b.Excerpt,
		Tags:      b.Tags,
		Category:  b.Category,
		Status:    string(b.Status),
		Featured:  b.Featured,
		LikeCount: b.LikeCount(),
		Views:     b.Views,
		ReadTime:  b.ReadTime,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if author != nil {
		s.Author = &AuthorInfo{
			ID:       author.ID,
			Username: author.Username,
			Avatar:   author.Avatar,
		}
	}
	return s
}

// toBlogSummaryList converts a page of blogs using the resolved author map
func toBlogSummaryList(result *service.ListResult) []BlogSummary {
	summaries := make([]BlogSummary, len(result.Blogs))
	for i, b := range result.Blogs {
		var author *auth.Summary
		if a, ok := result.Authors[b.AuthorID]; ok {
			author = &a
		}
		summaries[i] = toBlogSummary(b, author)
	}
	return summaries
}

// toBlogDetail converts a resolved detail result to the full projection
func toBlogDetail(d *service.DetailResult) BlogDetail {
	detail := BlogDetail{
		BlogSummary: toBlogSummary(d.Blog, d.Author),
		Content:     d.Blog.Content,
		Likes:       make([]LikerInfo, 0, len(d.LikedBy)),
	}
	if d.Author != nil {
		detail.Author.Bio = d.Author.Bio
	}
	for _, liker := range d.LikedBy {
		detail.Likes = append(detail.Likes, LikerInfo{
			ID:       liker.ID,
			Username: liker.Username,
		})
	}
	return detail
}

// parsePagination coerces the page and limit query parameters, falling
// back to defaults on absent or nonsensical values
func parsePagination(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err = strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// writeError maps service errors to status codes and error bodies
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := 50001

	switch {
	case service.IsValidation(err):
		status = http.StatusBadRequest
		code = 40001
	case errors.Is(err, service.ErrBlogNotFound):
		status = http.StatusNotFound
		code = 40402
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		code = 40301
	}

	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

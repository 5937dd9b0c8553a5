package http

// ErrorResponse is the error body shared by every API endpoint.
// Message is always safe to show to a user; Detail carries optional
// machine context and is omitted for storage failures.
type ErrorResponse struct {
	Code    int    `json:"code"`             // error code (non-zero on failure)
	Message string `json:"message"`          // human-readable message
	Detail  string `json:"detail,omitempty"` // optional detail
}

// NewErrorResponse creates an error body
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// Pagination is the descriptor attached to every list response
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalBlogs  int64 `json:"totalBlogs"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewPagination computes the descriptor for a page of results
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalBlogs:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

package http

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body shared by every API endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse acknowledges an operation that has no record to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListResponse wraps collections as {"data": [...]}.
type ListResponse[T any] struct {
	Data []T `json:"data"`
}

// Abort writes an error body and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}

// List writes items as a {"data": [...]} envelope, never null.
func List[T any](c *gin.Context, status int, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(status, ListResponse[T]{Data: items})
}

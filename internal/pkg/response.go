package pkg

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/customer-directory/internal/domain"
)

// ErrorResponse is the JSON body for all error responses.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// ErrorDetails carries per-rule messages for validation failures.
type ErrorDetails struct {
	ValidationErrors []string `json:"validationErrors"`
}

// Success sends a 200 JSON response with the given body. List responses
// carry the pagination fields directly; there is no envelope.
func Success(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// ValidationError sends a 400 JSON response with one message per violated rule.
func ValidationError(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Details: &ErrorDetails{ValidationErrors: errs},
	})
}

// NotFound sends a 404 JSON response for a missing resource.
func NotFound(c *gin.Context, resource string) {
	if resource == "" {
		resource = "Resource"
	}
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// Error sends a JSON error response mapped from a domain error.
//
// Validation errors surface their rule messages; not-found errors surface
// their message. Anything else is logged with full detail server-side and
// answered with an opaque 500 body so internals never reach the caller.
func Error(c *gin.Context, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		switch {
		case domain.IsValidation(err):
			ValidationError(c, appErr.Errors)
			return
		case domain.IsNotFound(err):
			c.JSON(domain.HTTPStatusCode(err), ErrorResponse{Error: appErr.Message})
			return
		}
	}

	slog.ErrorContext(c.Request.Context(), "request failed",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Any("error", err),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

// BindQuery binds query parameters to obj. On failure it sends a 400
// validation response and returns false.
//
// Usage in handlers:
//
//	if !pkg.BindQuery(c, &filters) { return }
func BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		ValidationError(c, []string{err.Error()})
		return false
	}
	return true
}

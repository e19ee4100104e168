package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform failure envelope returned by the API,
// regardless of which pipeline stage failed.
type ErrorResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	ErrorKind ErrorCode `json:"errorKind"`
}

// HandleError renders err through the failure envelope. Anything that is
// not an *AppError is treated as Internal so collaborator-specific error
// shapes never leak to clients.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("request failed",
			"kind", string(appErr.Code),
			"error", appErr.Error(),
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{
		Success:   false,
		Message:   appErr.Message,
		ErrorKind: appErr.Code,
	})
}

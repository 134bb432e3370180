package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/logging"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
	Raw     string `json:"raw,omitempty"`
}

var statusByKind = map[apperrors.Kind]int{
	apperrors.KindBadRequest:   http.StatusBadRequest,
	apperrors.KindUnauthorized: http.StatusUnauthorized,
	apperrors.KindForbidden:    http.StatusForbidden,
	apperrors.KindNotFound:     http.StatusNotFound,
	apperrors.KindServer:       http.StatusInternalServerError,
}

// StatusFor maps an error to its HTTP status. Unclassified errors are 500.
func StatusFor(err error) int {
	if status, ok := statusByKind[apperrors.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorBody builds the client-facing body for err. Causes of server errors
// are never exposed.
func ErrorBody(err error) ErrorResponse {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return ErrorResponse{Message: appErr.Message, Raw: appErr.Raw}
	}
	return ErrorResponse{Message: "Server error"}
}

// ErrorHandler recovers from panics and answers with a JSON 500.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
	})
}

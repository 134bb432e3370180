package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/middleware"
)

// MessageResponse is the body of calls that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError writes err with the status of its kind. Server errors are
// logged with their cause.
func respondError(c *gin.Context, err error) {
	status := middleware.StatusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, middleware.ErrorBody(err))
}

// bindJSON decodes and validates the body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apperrors.BadRequest(validationMessage(err)))
		return false
	}
	return true
}

// pathID parses a uuid path parameter. Malformed ids cannot match anything,
// so they get the same answer as unknown ones.
func pathID(c *gin.Context, name, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, apperrors.NotFound(notFound))
		return uuid.Nil, false
	}
	return id, true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	field := jsonName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "email":
		return "Invalid email address"
	default:
		return fmt.Sprintf("Invalid %s", field)
	}
}

func hasTag(err error, tag string) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

// jsonName turns a Go field name into its camelCase wire name.
func jsonName(field string) string {
	if field == "" {
		return field
	}
	if strings.HasSuffix(field, "URL") {
		field = strings.TrimSuffix(field, "URL") + "Url"
	}
	return strings.ToLower(field[:1]) + field[1:]
}

package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"blogapi/internal/app"
	"blogapi/internal/transport/http/response"
)

// translation is one row of the boundary error table: the first row whose
// match accepts the error renders the response.
type translation struct {
	match  func(error) bool
	render func(*gin.Context, error)
}

var translations = []translation{
	{
		match:  isValidationError,
		render: renderValidation,
	},
	{
		match:  matches(app.ErrEmailExists),
		render: renderFieldError("email", "The email has already been taken."),
	},
	{
		match:  matches(app.ErrSlugExists),
		render: renderFieldError("slug", "The slug has already been taken."),
	},
	{
		match:  matches(app.ErrPasswordConfirmation),
		render: renderFieldError("password", "The password confirmation does not match."),
	},
	{
		match: matches(app.ErrInvalidCredential),
		render: func(c *gin.Context, _ error) {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
		},
	},
	{
		match: matches(app.ErrNotFound),
		render: func(c *gin.Context, _ error) {
			response.Error(c, http.StatusNotFound, "Resource not found", nil)
		},
	},
	{
		match: matches(app.ErrForbidden),
		render: func(c *gin.Context, _ error) {
			response.Error(c, http.StatusForbidden, "Unauthorized access", nil)
		},
	},
	{
		// uniqueness races past the service-level pre-check land here via
		// the store's translated duplicate-key error
		match: matches(gorm.ErrDuplicatedKey),
		render: func(c *gin.Context, _ error) {
			response.Error(c, http.StatusUnprocessableEntity, "The given data was invalid.", nil)
		},
	},
	{
		match: isMalformedBody,
		render: func(c *gin.Context, _ error) {
			response.Error(c, http.StatusUnprocessableEntity, "The given data was invalid.", nil)
		},
	},
	{
		match:  matches(app.ErrInvalidInput),
		render: func(c *gin.Context, _ error) {
			response.Error(c, http.StatusUnprocessableEntity, "The given data was invalid.", nil)
		},
	},
}

// ErrorTranslator turns errors collected during the request into envelope
// responses. Handlers attach errors with c.Error and return; nothing below
// the boundary writes an error body itself.
func ErrorTranslator() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		for _, t := range translations {
			if t.match(err) {
				t.render(c, err)
				return
			}
		}
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

func matches(target error) func(error) bool {
	return func(err error) bool {
		return errors.Is(err, target)
	}
}

func isValidationError(err error) bool {
	var ve validator.ValidationErrors
	return errors.As(err, &ve)
}

func isMalformedBody(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

func renderValidation(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	errors.As(err, &ve)

	fields := make(map[string][]string, len(ve))
	for _, fe := range ve {
		field := snakeCase(fe.Field())
		fields[field] = append(fields[field], fieldMessage(field, fe))
	}
	response.Error(c, http.StatusUnprocessableEntity, "The given data was invalid.", fields)
}

func renderFieldError(field, message string) func(*gin.Context, error) {
	return func(c *gin.Context, _ error) {
		fields := map[string][]string{field: {message}}
		response.Error(c, http.StatusUnprocessableEntity, "The given data was invalid.", fields)
	}
}

func fieldMessage(field string, fe validator.FieldError) string {
	name := strings.ReplaceAll(field, "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", name)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", name, fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", name, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", strings.TrimSuffix(name, " confirmation"))
	default:
		return fmt.Sprintf("The %s is invalid.", name)
	}
}

func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

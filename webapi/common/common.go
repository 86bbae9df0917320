// Package common holds the response helpers shared by the route groups.
package common

import (
	"errors"
	"reflect"
	"strings"

	"github.com/amirasaad/vmadmin/pkg/domain"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/pkg/validation"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const problemJSON = "application/problem+json"

// Response is the envelope for successful responses.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, user.ErrUserUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// ProblemDetailsJSON writes a problem response. extra may hold a string
// detail and an int status; without a status one is derived from err.
// Validation errors are rendered as their field map.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extra ...any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   ErrorToStatusCode(err),
		Instance: c.OriginalURL(),
	}
	if pd.Status == fiber.StatusOK {
		pd.Status = fiber.StatusBadRequest
	}
	for _, e := range extra {
		switch v := e.(type) {
		case string:
			pd.Detail = v
		case int:
			pd.Status = v
		}
	}

	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		pd.Errors = verr.Fields
	case err != nil && pd.Detail == "" && pd.Status < fiber.StatusInternalServerError:
		pd.Detail = err.Error()
	}
	return c.Status(pd.Status).JSON(pd, problemJSON)
}

// SuccessResponseJSON wraps data in a Response envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// BindAndValidate parses the body into T and checks its validate tags. On
// failure the error response is already written and the returned pointer is
// nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", nil, err.Error(), fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
		}
		verr := &validation.Error{Fields: map[string][]string{}}
		for _, fe := range fieldErrs {
			verr.Fields[fe.Field()] = append(verr.Fields[fe.Field()], fieldMessage(fe))
		}
		return nil, ProblemDetailsJSON(c, "Validation failed", verr)
	}
	return &input, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return validation.MsgRequired
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "gte", "min":
		return "Ensure this value is greater than or equal to " + fe.Param() + "."
	case "email":
		return "Enter a valid email address."
	case "uuid", "uuid4":
		return "Must be a valid UUID."
	default:
		return "Invalid value."
	}
}

// ParamUUID parses the named route parameter. On failure the error
// response is already written and ok is false.
func ParamUUID(c *fiber.Ctx, name string) (id uuid.UUID, ok bool, err error) {
	id, err = uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false, ProblemDetailsJSON(c, "Invalid ID", nil, name+" must be a valid UUID", fiber.StatusBadRequest)
	}
	return id, true, nil
}

// UserIDResolver extracts the caller's id from a verified token.
type UserIDResolver interface {
	GetCurrentUserID(token *jwt.Token) (uuid.UUID, error)
}

// CurrentUserID returns the id of the authenticated caller.
func CurrentUserID(c *fiber.Ctx, r UserIDResolver) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return r.GetCurrentUserID(token)
}

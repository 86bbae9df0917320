package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/vmadmin/pkg/domain"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/pkg/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{validation.NewError("name", "bad"), fiber.StatusBadRequest},
		{fmt.Errorf("get vm: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{domain.ErrAlreadyExists, fiber.StatusConflict},
		{user.ErrUserUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ErrorToStatusCode(tc.err), tc.err.Error())
	}
}

func do(t *testing.T, app *fiber.App, body string) (*http.Response, ProblemDetails) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	var pd ProblemDetails
	_ = json.NewDecoder(resp.Body).Decode(&pd)
	return resp, pd
}

func TestProblemDetailsJSON(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		switch c.Query("case") {
		case "validation":
			return ProblemDetailsJSON(c, "Invalid", validation.NewError("vm", "missing"))
		case "override":
			return ProblemDetailsJSON(c, "Teapot", errors.New("x"), "short and stout", fiber.StatusTeapot)
		default:
			return ProblemDetailsJSON(c, "Internal Server Error", errors.New("db password leaked"))
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/?case=validation", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"missing"}, body.Errors["vm"])

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/?case=override", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	resp, pd := do(t, app, "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, pd.Detail)
}

type sample struct {
	Name  string `json:"name" validate:"required,max=3"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestBindAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		in, err := BindAndValidate[sample](c)
		if in == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "ok", in)
	})

	resp, _ := do(t, app, `{"name":"abc"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, pd := do(t, app, `{"name":"abcd","email":"nope"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errs, ok := pd.Errors.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Ensure this field has no more than 3 characters."}, errs["name"])
	assert.Equal(t, []any{"Enter a valid email address."}, errs["email"])

	resp, pd = do(t, app, `{"name":1}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", pd.Title)
}

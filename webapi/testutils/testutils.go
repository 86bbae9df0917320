// Package testutils runs the HTTP application against the in-memory store.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/amirasaad/vmadmin/internal/fixtures/memory"
	"github.com/amirasaad/vmadmin/pkg/app"
	"github.com/amirasaad/vmadmin/pkg/config"
	"github.com/amirasaad/vmadmin/pkg/domain/user"
	"github.com/amirasaad/vmadmin/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const TestPassword = "password123"

// Envelope mirrors common.Response with a typed payload.
type Envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Problem mirrors common.ProblemDetails with the validation field map.
type Problem struct {
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Detail string              `json:"detail"`
	Errors map[string][]string `json:"errors"`
}

// TestUser is a user created through the API.
type TestUser struct {
	ID       uuid.UUID
	Username string
	Email    string
	Token    string
}

// APITestSuite gives every test a fresh store and application.
type APITestSuite struct {
	suite.Suite
	Store        *memory.UoW
	App          *fiber.App
	Cfg          *config.App
	StandardRole *user.Role
}

func NewTestConfig() *config.App {
	return &config.App{
		Env:       "test",
		Log:       &config.Log{},
		DB:        &config.DB{},
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "test-secret", Expiry: time.Hour}},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Second},
		Billing:   &config.Billing{DefaultRole: user.StandardRoleName},
	}
}

func (s *APITestSuite) SetupTest() {
	s.Store = memory.New()
	s.StandardRole = &user.Role{ID: uuid.New(), Name: user.StandardRoleName, IsDefault: true}
	s.Store.SeedRole(s.StandardRole)
	s.Cfg = NewTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.App = webapi.SetupApp(app.New(&app.Deps{Uow: s.Store, Logger: logger}, s.Cfg))
}

// MakeRequest sends body as JSON, with a bearer token when one is given.
func (s *APITestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.App.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Decode reads a success envelope and closes the body.
func Decode[T any](s *APITestSuite, resp *http.Response) T {
	defer resp.Body.Close() //nolint:errcheck
	var env Envelope[T]
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))
	return env.Data
}

// DecodeProblem reads a problem response and closes the body.
func (s *APITestSuite) DecodeProblem(resp *http.Response) Problem {
	defer resp.Body.Close() //nolint:errcheck
	var p Problem
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&p))
	return p
}

// CreateTestUser signs up a Standard User and logs it in.
func (s *APITestSuite) CreateTestUser() TestUser {
	name := "user_" + uuid.NewString()[:8]
	email := name + "@example.com"
	resp := s.MakeRequest(fiber.MethodPost, "/auth/signup",
		fmt.Sprintf(`{"username":%q,"email":%q,"password":%q}`, name, email, TestPassword), "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	created := Decode[struct {
		ID uuid.UUID `json:"id"`
	}](s, resp)
	return TestUser{ID: created.ID, Username: name, Email: email, Token: s.LoginUser(name)}
}

// LoginUser logs identity in with TestPassword and returns the token.
func (s *APITestSuite) LoginUser(identity string) string {
	resp := s.MakeRequest(fiber.MethodPost, "/auth/login",
		fmt.Sprintf(`{"identity":%q,"password":%q}`, identity, TestPassword), "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	data := Decode[map[string]string](s, resp)
	s.Require().NotEmpty(data["token"])
	return data["token"]
}

package webapi_test

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/vmadmin/internal/fixtures/memory"
	"github.com/amirasaad/vmadmin/pkg/app"
	"github.com/amirasaad/vmadmin/pkg/config"
	"github.com/amirasaad/vmadmin/webapi"
	"github.com/amirasaad/vmadmin/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(rl *config.RateLimit, srv *config.Server) *fiber.App {
	cfg := testutils.NewTestConfig()
	cfg.RateLimit = rl
	cfg.Server = srv
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return webapi.SetupApp(app.New(&app.Deps{Uow: memory.New(), Logger: logger}, cfg))
}

func get(t *testing.T, a *fiber.App, path, forwardedFor string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if forwardedFor != "" {
		req.Header.Set(fiber.HeaderXForwardedFor, forwardedFor)
	}
	resp, err := a.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	return resp.StatusCode
}

func TestHealthAndUnknownRoute(t *testing.T) {
	a := newApp(&config.RateLimit{MaxRequests: 100, Window: time.Minute}, nil)
	assert.Equal(t, fiber.StatusOK, get(t, a, "/", ""))
	assert.Equal(t, fiber.StatusNotFound, get(t, a, "/nope", ""))
}

func TestRateLimit_ForwardedHeadersFromUntrustedPeer(t *testing.T) {
	a := newApp(&config.RateLimit{MaxRequests: 2, Window: time.Minute}, &config.Server{
		ProxyHeader: fiber.HeaderXForwardedFor,
	})

	var got []int
	for i := range 6 {
		got = append(got, get(t, a, "/", fmt.Sprintf("10.0.0.%d", i+1)))
	}
	assert.Equal(t, []int{
		fiber.StatusOK, fiber.StatusOK,
		fiber.StatusTooManyRequests, fiber.StatusTooManyRequests,
		fiber.StatusTooManyRequests, fiber.StatusTooManyRequests,
	}, got)
}

func TestRateLimit_PerClientBehindTrustedProxy(t *testing.T) {
	// app.Test connections come from 0.0.0.0.
	a := newApp(&config.RateLimit{MaxRequests: 2, Window: time.Minute}, &config.Server{
		ProxyHeader:    fiber.HeaderXForwardedFor,
		TrustedProxies: []string{"0.0.0.0"},
	})

	assert.Equal(t, fiber.StatusOK, get(t, a, "/", "10.0.0.1"))
	assert.Equal(t, fiber.StatusOK, get(t, a, "/", "10.0.0.1, 192.168.0.1"))
	assert.Equal(t, fiber.StatusTooManyRequests, get(t, a, "/", "10.0.0.1"))
	assert.Equal(t, fiber.StatusOK, get(t, a, "/", "10.0.0.2"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env.test")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"AUTH_JWT_SECRET=topsecret\nAUTH_JWT_EXPIRY=5m\nSERVER_PORT=8081\n" +
			"SERVER_PROXY_HEADER=X-Forwarded-For\nSERVER_TRUSTED_PROXIES=10.0.0.1,10.0.0.2\n",
	), 0o600))
	t.Chdir(dir)
	unsetEnv(t, "AUTH_JWT_SECRET", "AUTH_JWT_EXPIRY", "SERVER_PORT", "APP_ENV", "BILLING_DEFAULT_ROLE",
		"SERVER_PROXY_HEADER", "SERVER_TRUSTED_PROXIES")

	cfg, err := Load(".env.test")
	require.NoError(t, err)
	assert.Equal(t, "topsecret", cfg.Auth.Jwt.Secret)
	assert.Equal(t, 5*time.Minute, cfg.Auth.Jwt.Expiry)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "X-Forwarded-For", cfg.Server.ProxyHeader)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Server.TrustedProxies)
	assert.Equal(t, "Standard User", cfg.Billing.DefaultRole)
	assert.Equal(t, "development", cfg.Env)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	unsetEnv(t, "AUTH_JWT_SECRET")

	_, err := Load()
	assert.Error(t, err)
}

func TestFindEnvFile_WalksParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), nil, 0o600))
	t.Chdir(nested)

	path, err := FindEnvFile("")
	require.NoError(t, err)
	assert.Equal(t, ".env", filepath.Base(path))

	_, err = FindEnvFile(".env.missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "****", maskValue("short"))
	assert.Equal(t, "po****able", maskValue("postgres://disable"))
}

// unsetEnv clears keys for the test and restores their previous values.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, old) }) //nolint:errcheck
		} else {
			t.Cleanup(func() { os.Unsetenv(key) }) //nolint:errcheck
		}
		os.Unsetenv(key) //nolint:errcheck
	}
}

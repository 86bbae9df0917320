package initializer

import (
	"bytes"
	"testing"

	"github.com/amirasaad/vmadmin/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_RespectsLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Log{Level: 4, Format: "json"})

	logger.Info("hidden")
	logger.Error("shown", "vmID", "abc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"vmID":"abc"`)
}

func TestNewLogger_NilConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, nil)
	logger.Info("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestInitializeDependencies_RequiresDatabaseURL(t *testing.T) {
	cfg := &config.App{Env: "test", Log: &config.Log{}, DB: &config.DB{}}
	deps, db, err := InitializeDependencies(cfg)
	require.Error(t, err)
	assert.Nil(t, deps)
	assert.Nil(t, db)
}

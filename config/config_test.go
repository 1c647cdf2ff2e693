package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dci/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "console", cfg.Sink)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "dci:report", cfg.RedisStream)
	assert.False(t, cfg.Metrics)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DCI_LOG_LEVEL", "debug")
	t.Setenv("DCI_SINK", "redis")
	t.Setenv("DCI_REDIS_ADDR", "localhost:6379")
	t.Setenv("DCI_LOCALE", "de")
	t.Setenv("DCI_METRICS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis", cfg.Sink)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "de", cfg.Locale)
	assert.True(t, cfg.Metrics)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown sink", func(t *testing.T) {
		t.Setenv("DCI_SINK", "kafka")
		_, err := Load()
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("nats without url", func(t *testing.T) {
		t.Setenv("DCI_SINK", "nats")
		_, err := Load()
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("DCI_METRICS", "maybe")
		_, err := Load()
		assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetErrorCode(err))
	})
}

const sampleFixture = `
accounts:
  - id: account/1
    balance: 1000
  - id: account/2
    balance: 1000
transfers:
  - from: account/1
    to: account/2
    amount: 350
`

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFixture), 0o600))

	f, err := LoadFixture(path)
	require.NoError(t, err)
	require.Len(t, f.Accounts, 2)
	require.Len(t, f.Transfers, 1)
	assert.Equal(t, int64(350), f.Transfers[0].Amount)

	a, ok := f.Account("account/2")
	require.True(t, ok)
	assert.Equal(t, int64(1000), a.Balance)
	_, ok = f.Account("account/9")
	assert.False(t, ok)
}

func TestLoadFixture_Missing(t *testing.T) {
	_, err := LoadFixture(filepath.Join(t.TempDir(), "none.yaml"))
	assert.True(t, errors.IsNotFound(err))
}

func TestParseFixture_Invalid(t *testing.T) {
	cases := map[string]string{
		"malformed":         "accounts: [",
		"no accounts":       "accounts: []",
		"negative balance":  "accounts:\n  - id: a\n    balance: -1\n",
		"duplicate account": "accounts:\n  - id: a\n  - id: a\n",
		"unknown account":   "accounts:\n  - id: a\ntransfers:\n  - from: a\n    to: b\n    amount: 1\n",
		"self transfer":     "accounts:\n  - id: a\ntransfers:\n  - from: a\n    to: a\n    amount: 1\n",
		"zero amount":       "accounts:\n  - id: a\n  - id: b\ntransfers:\n  - from: a\n    to: b\n    amount: 0\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFixture([]byte(doc))
			require.Error(t, err)
		})
	}
}

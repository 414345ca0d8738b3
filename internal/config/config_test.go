package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecretFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeSecretFile(t, `{"GROQ_API_KEY": "gsk_test"}`))
	for _, key := range []string{"PORT", "MODEL", "CONVERSATION_SCOPE", "SESSION_TTL_MINUTES", "UPSTREAM_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gsk_test", cfg.GroqAPIKey)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Model)
	assert.Equal(t, ScopeSession, cfg.ConversationScope)
	assert.Equal(t, 120*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeSecretFile(t, `{"GROQ_API_KEY": "gsk_test"}`))
	t.Setenv("PORT", "8080")
	t.Setenv("CONVERSATION_SCOPE", ScopeGlobal)
	t.Setenv("SESSION_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ScopeGlobal, cfg.ConversationScope)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
}

func TestLoadRejectsUnknownScope(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeSecretFile(t, `{"GROQ_API_KEY": "gsk_test"}`))
	t.Setenv("CONVERSATION_SCOPE", "everywhere")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFailsWithoutSecretFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.json"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFailsOnMalformedSecretFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeSecretFile(t, `not json`))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFailsOnMissingKey(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeSecretFile(t, `{"GROQ_API_KEY": ""}`))

	_, err := Load()
	assert.Error(t, err)
}

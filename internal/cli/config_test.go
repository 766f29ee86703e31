package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "g-key", cfg.ResolvedAPIKey())
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 2*time.Minute, cfg.HTTP.WriteTimeout)
	assert.Equal(t, "gemini-3-flash-preview", cfg.Chat.Model)
	assert.InDelta(t, 0.7, cfg.Chat.Temperature, 1e-6)
	assert.Equal(t, "Food Punch Karachi", cfg.Prompt.BusinessName)
	require.NoError(t, cfg.Validate())

	ttl, err := cfg.ConversationTTL()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("API_KEY=from-file\nSTORE_BACKEND=Redis\nREDIS_URL=redis://localhost:6379/0\nHTTP_ADDR=:9090\nCHAT_MODEL=gemini-2.5-flash\n"), 0o600))
	for _, k := range []string{"API_KEY", "STORE_BACKEND", "REDIS_URL", "HTTP_ADDR", "CHAT_MODEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, k := range []string{"API_KEY", "STORE_BACKEND", "REDIS_URL", "HTTP_ADDR", "CHAT_MODEL"} {
			os.Unsetenv(k)
		}
	})

	assert.Equal(t, "from-file", cfg.ResolvedAPIKey())
	assert.Equal(t, StoreRedis, cfg.StoreBackend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "gemini-2.5-flash", cfg.Chat.Model)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingEnvFileIsFine(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &AppConfig{StoreBackend: "postgres"}
	cfg.Conversation.TTL = "forever"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY or GEMINI_API_KEY")
	assert.Contains(t, err.Error(), "STORE_BACKEND")
	assert.Contains(t, err.Error(), "CONVERSATION_TTL")

	cfg = &AppConfig{APIKey: "k", StoreBackend: StoreRedis}
	cfg.Conversation.TTL = "1h"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

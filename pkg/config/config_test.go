package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/prefixserve/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3, cfg.Matcher.MinWordLength)
	assert.Equal(t, 3, cfg.Matcher.DefaultK)
	assert.Equal(t, "rway", cfg.Matcher.Backend)
	assert.Equal(t, "exit", cfg.CLI.ExitToken)
	assert.Equal(t, "one oneapple onedrive", cfg.CLI.Seed)
	assert.True(t, cfg.CLI.Color)
	assert.Equal(t, 60, cfg.Server.MaxPrefix)
	assert.Equal(t, 256, cfg.Server.CacheSize)
	assert.Empty(t, cfg.Dict.Files)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[matcher]
default_k = 5
backend = "patricia"

[dict]
files = ["words.txt"]
max_words = 1000
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Matcher.DefaultK)
	assert.Equal(t, "patricia", cfg.Matcher.Backend)
	assert.Equal(t, 3, cfg.Matcher.MinWordLength, "missing keys keep defaults")
	assert.Equal(t, []string{"words.txt"}, cfg.Dict.Files)
	assert.Equal(t, 1000, cfg.Dict.MaxWords)
	assert.Equal(t, "exit", cfg.CLI.ExitToken)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[matcher]
min_word_length = "four"
default_k = 2

[server]
cache_size = 16

[cli]
color = false
exit_token = "quit"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Matcher.MinWordLength, "wrongly typed key is skipped")
	assert.Equal(t, 2, cfg.Matcher.DefaultK)
	assert.Equal(t, 16, cfg.Server.CacheSize)
	assert.False(t, cfg.CLI.Color)
	assert.Equal(t, "quit", cfg.CLI.ExitToken)
}

func TestLoadConfigUnparseable(t *testing.T) {
	path := writeConfig(t, "[matcher\ndefault_k = ")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Matcher: MatcherConfig{MinWordLength: 0, DefaultK: -1, Backend: "btree"},
		Server:  ServerConfig{MaxPrefix: 1, CacheSize: -5},
		Dict:    DictConfig{MaxWords: -1},
	}
	cfg.Validate()

	def := DefaultConfig()
	assert.Equal(t, def.Matcher, cfg.Matcher)
	assert.Equal(t, def.Server.MaxPrefix, cfg.Server.MaxPrefix)
	assert.Zero(t, cfg.Server.CacheSize)
	assert.Equal(t, "exit", cfg.CLI.ExitToken)
	assert.Zero(t, cfg.Dict.MaxWords)
}

func TestValidateKeepsMinimumLengthGate(t *testing.T) {
	for _, n := range []int{1, 2} {
		cfg := DefaultConfig()
		cfg.Matcher.MinWordLength = n
		cfg.Validate()
		assert.Equal(t, suggest.MinWordLength, cfg.Matcher.MinWordLength, "n=%d", n)
	}

	cfg := DefaultConfig()
	cfg.Matcher.MinWordLength = 5
	cfg.Validate()
	assert.Equal(t, 5, cfg.Matcher.MinWordLength)
}

func TestInitConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[cli]\nexit_token = \"quit\"\n")

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "quit", cfg.CLI.ExitToken)
}

func TestGetActiveConfigPath(t *testing.T) {
	assert.Equal(t, "builtin defaults", GetActiveConfigPath(""))
	assert.True(t, filepath.IsAbs(GetActiveConfigPath("config.toml")))
}

/*
Package config manages TOML config for prefixserve.

Values are resolved in order: the file given with -config, the default
config.toml in the user config dir (created on first run), then built-in
defaults. Unparseable files are recovered section by section.
*/
package config

import (
	"path/filepath"

	"github.com/bastiangx/prefixserve/internal/utils"
	"github.com/bastiangx/prefixserve/pkg/suggest"
	"github.com/bastiangx/prefixserve/pkg/trie"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Matcher MatcherConfig `toml:"matcher"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
	Dict    DictConfig    `toml:"dict"`
}

// MatcherConfig controls word gating and suggestion shaping.
type MatcherConfig struct {
	MinWordLength int    `toml:"min_word_length"`
	DefaultK      int    `toml:"default_k"`
	Backend       string `toml:"backend"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxPrefix int `toml:"max_prefix"`
	CacheSize int `toml:"cache_size"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	ExitToken string `toml:"exit_token"`
	Seed      string `toml:"seed"`
	Color     bool   `toml:"color"`
}

// DictConfig lists word files loaded at startup.
type DictConfig struct {
	Files    []string `toml:"files"`
	MaxWords int      `toml:"max_words"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Matcher: MatcherConfig{
			MinWordLength: suggest.MinWordLength,
			DefaultK:      suggest.DefaultK,
			Backend:       trie.BackendRWay,
		},
		Server: ServerConfig{
			MaxPrefix: 60,
			CacheSize: 256,
		},
		CLI: CliConfig{
			ExitToken: "exit",
			Seed:      "one oneapple onedrive",
			Color:     true,
		},
		Dict: DictConfig{
			Files:    []string{},
			MaxWords: 0,
		},
	}
}

// Validate resets out of range values to their defaults.
func (c *Config) Validate() {
	def := DefaultConfig()
	if c.Matcher.MinWordLength < suggest.MinWordLength {
		log.Warnf("Invalid min_word_length %d, using %d", c.Matcher.MinWordLength, def.Matcher.MinWordLength)
		c.Matcher.MinWordLength = def.Matcher.MinWordLength
	}
	if c.Matcher.DefaultK < 1 {
		log.Warnf("Invalid default_k %d, using %d", c.Matcher.DefaultK, def.Matcher.DefaultK)
		c.Matcher.DefaultK = def.Matcher.DefaultK
	}
	if c.Matcher.Backend == "" {
		c.Matcher.Backend = def.Matcher.Backend
	} else if _, err := trie.New(c.Matcher.Backend); err != nil {
		log.Warnf("Invalid backend %q, using %q", c.Matcher.Backend, def.Matcher.Backend)
		c.Matcher.Backend = def.Matcher.Backend
	}
	if c.Server.MaxPrefix < c.Matcher.MinWordLength {
		log.Warnf("Invalid max_prefix %d, using %d", c.Server.MaxPrefix, def.Server.MaxPrefix)
		c.Server.MaxPrefix = max(def.Server.MaxPrefix, c.Matcher.MinWordLength)
	}
	if c.Server.CacheSize < 0 {
		c.Server.CacheSize = 0
	}
	if c.CLI.ExitToken == "" {
		c.CLI.ExitToken = def.CLI.ExitToken
	}
	if c.Dict.MaxWords < 0 {
		c.Dict.MaxWords = 0
	}
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	resolver, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return resolver.GetConfigPath("config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/prefixserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Missing keys keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.Validate()
	return config, nil
}

// tryPartialParse keeps whatever sections and keys can still be read
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "matcher"); ok {
		extractMatcherConfig(section, &config.Matcher)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	config.Validate()
	return config, nil
}

func extractMatcherConfig(data map[string]any, m *MatcherConfig) {
	if val, ok := utils.ExtractInt64(data, "min_word_length"); ok {
		m.MinWordLength = val
	}
	if val, ok := utils.ExtractInt64(data, "default_k"); ok {
		m.DefaultK = val
	}
	if val, ok := utils.ExtractString(data, "backend"); ok {
		m.Backend = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		server.CacheSize = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "exit_token"); ok {
		cli.ExitToken = val
	}
	if val, ok := utils.ExtractString(data, "seed"); ok {
		cli.Seed = val
	}
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractStringSlice(data, "files"); ok {
		dict.Files = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

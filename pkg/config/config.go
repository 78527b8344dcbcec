/*
Package config manages the TOML (or YAML) config for wordkit services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordkit/internal/utils"
	"github.com/bastiangx/wordkit/pkg/dictionary"
	"github.com/bastiangx/wordkit/pkg/hashmap"
	"github.com/bastiangx/wordkit/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server" yaml:"server"`
	Index  IndexConfig  `toml:"index" yaml:"index"`
	Dict   DictConfig   `toml:"dict" yaml:"dict"`
	CLI    CliConfig    `toml:"cli" yaml:"cli"`
	Map    MapConfig    `toml:"map" yaml:"map"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit" yaml:"max_limit"`
	MinPrefix    int  `toml:"min_prefix" yaml:"min_prefix"`
	MaxPrefix    int  `toml:"max_prefix" yaml:"max_prefix"`
	EnableFilter bool `toml:"enable_filter" yaml:"enable_filter"`
}

// IndexConfig tunes the suggestion index and its completer.
type IndexConfig struct {
	MaxSuggestions       int   `toml:"max_suggestions" yaml:"max_suggestions"`
	MinWeight            int64 `toml:"min_weight" yaml:"min_weight"`
	MinWeightShortPrefix int64 `toml:"min_weight_short_prefix" yaml:"min_weight_short_prefix"`
	CacheSize            int   `toml:"cache_size" yaml:"cache_size"`
	Fuzzy                bool  `toml:"fuzzy" yaml:"fuzzy"`
	SkipExact            bool  `toml:"skip_exact" yaml:"skip_exact"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit" yaml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len" yaml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len" yaml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter" yaml:"default_no_filter"`
}

// MapConfig sizes the hash map the loader de-duplicates words with.
type MapConfig struct {
	InitialCapacity int     `toml:"initial_capacity" yaml:"initial_capacity"`
	LoadFactor      float64 `toml:"load_factor" yaml:"load_factor"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "wordkit")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "wordkit")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordkit/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
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

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    1,
			MaxPrefix:    60,
			EnableFilter: true,
		},
		Index: IndexConfig{
			MaxSuggestions:       64,
			MinWeight:            0,
			MinWeightShortPrefix: 0,
			CacheSize:            1024,
			Fuzzy:                true,
			SkipExact:            true,
		},
		CLI: CliConfig{
			DefaultLimit:    24,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultNoFilter: false,
		},
		Map: MapConfig{
			InitialCapacity: hashmap.DefaultCapacity,
			LoadFactor:      hashmap.DefaultLoadFactor,
		},
	}
}

// CompleterOptions maps the [index] section onto completer options.
func (c *Config) CompleterOptions() suggest.CompleterOptions {
	return suggest.CompleterOptions{
		MinWeight:            c.Index.MinWeight,
		MinWeightShortPrefix: c.Index.MinWeightShortPrefix,
		SkipExact:            c.Index.SkipExact,
		Fuzzy:                c.Index.Fuzzy,
		CacheSize:            c.Index.CacheSize,
	}
}

// Loader returns a dictionary loader sized by the [map] section.
func (c *Config) Loader() dictionary.Loader {
	return dictionary.Loader{
		Capacity:   c.Map.InitialCapacity,
		LoadFactor: c.Map.LoadFactor,
	}
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

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file, or a YAML file when the path ends in
// .yaml or .yml.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadConfigFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every well-typed value of a file that does not
// decode into Config as a whole.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "index"); ok {
		extractIndexConfig(section, &config.Index)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		if val, ok := utils.ExtractString(section, "path"); ok {
			config.Dict.Path = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if section, ok := utils.ExtractSection(tempConfig, "map"); ok {
		if val, ok := utils.ExtractInt(section, "initial_capacity"); ok {
			config.Map.InitialCapacity = val
		}
		if val, ok := utils.ExtractFloat(section, "load_factor"); ok {
			config.Map.LoadFactor = val
		}
	}
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

func extractIndexConfig(data map[string]any, index *IndexConfig) {
	if val, ok := utils.ExtractInt(data, "max_suggestions"); ok {
		index.MaxSuggestions = val
	}
	if val, ok := utils.ExtractInt(data, "min_weight"); ok {
		index.MinWeight = int64(val)
	}
	if val, ok := utils.ExtractInt(data, "min_weight_short_prefix"); ok {
		index.MinWeightShortPrefix = int64(val)
	}
	if val, ok := utils.ExtractInt(data, "cache_size"); ok {
		index.CacheSize = val
	}
	if val, ok := utils.ExtractBool(data, "fuzzy"); ok {
		index.Fuzzy = val
	}
	if val, ok := utils.ExtractBool(data, "skip_exact"); ok {
		index.SkipExact = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML or YAML file, picked by extension
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveConfigFile(config, configPath)
}

// Update changes the server values and saves to file
func (c *Config) Update(configPath string, maxLimit, minPrefix, maxPrefix *int, enableFilter *bool) error {
	server := &c.Server
	if maxLimit != nil {
		server.MaxLimit = *maxLimit
	}
	if minPrefix != nil {
		server.MinPrefix = *minPrefix
	}
	if maxPrefix != nil {
		server.MaxPrefix = *maxPrefix
	}
	if enableFilter != nil {
		server.EnableFilter = *enableFilter
	}
	return SaveConfig(c, configPath)
}

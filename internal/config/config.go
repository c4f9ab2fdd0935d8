// Package config loads labeller settings.
//
// Values are resolved in increasing order of precedence: built-in defaults,
// the config file, LABELLER_* environment variables, and finally command
// line flags (applied by the CLI after Load).
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/ThomasStivers/labeller/pkg/errors"
)

const (
	// AppName is the application name.
	AppName = "labeller"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
	// EnvPrefix prefixes environment variables, e.g. LABELLER_BUILDING.
	EnvPrefix = "LABELLER"
)

// Config holds every setting the CLI and server read.
type Config struct {
	Building   string      `mapstructure:"building"`
	Columns    int         `mapstructure:"columns"`
	Separator  string      `mapstructure:"separator"`
	BarcodeDir string      `mapstructure:"barcode_dir"`
	Topology   string      `mapstructure:"topology"` // rules file replacing the built-in buildings
	Serve      ServeConfig `mapstructure:"serve"`
	Cache      CacheConfig `mapstructure:"cache"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// CacheConfig selects the barcode image store for the server.
type CacheConfig struct {
	RedisURL string `mapstructure:"redis_url"` // empty uses the barcode directory
	Prefix   string `mapstructure:"prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Building:   "TLR",
		Columns:    6,
		Separator:  "-",
		BarcodeDir: "barcodes",
		Serve:      ServeConfig{Addr: "127.0.0.1:8080"},
		Cache:      CacheConfig{Prefix: "labeller:barcode:"},
	}
}

// LoadOptions controls where Load looks for a config file.
type LoadOptions struct {
	// ConfigFile is used exclusively when set; it must exist.
	ConfigFile string
	// ConfigDir overrides the user config directory.
	ConfigDir string
}

// Dir returns the user config directory ($XDG_CONFIG_HOME/labeller or
// ~/.config/labeller).
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Load resolves the configuration and returns it with the path of the
// config file that was read, or "" when none was found.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := findConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(ConfigFileExt)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, path, nil
}

// Validate checks values that viper cannot type-check.
func (c *Config) Validate() error {
	if err := apperrors.ValidateColumns(c.Columns); err != nil {
		return err
	}
	if strings.TrimSpace(c.Building) == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "building cannot be empty")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("building", d.Building)
	v.SetDefault("columns", d.Columns)
	v.SetDefault("separator", d.Separator)
	v.SetDefault("barcode_dir", d.BarcodeDir)
	v.SetDefault("topology", d.Topology)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("cache.redis_url", d.Cache.RedisURL)
	v.SetDefault("cache.prefix", d.Cache.Prefix)
}

func findConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if !fileExists(opts.ConfigFile) {
			return "", apperrors.New(apperrors.ErrCodeNotFound, "config file not found: %s", opts.ConfigFile)
		}
		return opts.ConfigFile, nil
	}

	dir := opts.ConfigDir
	if dir == "" {
		var err error
		if dir, err = Dir(); err != nil {
			// No home directory: run on defaults.
			return "", nil
		}
	}
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(path) {
		return path, nil
	}
	return "", nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

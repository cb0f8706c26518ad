// Package config loads sandboxer settings from a TOML file.
//
// Settings are looked up in this order, first match wins:
//
//  1. an explicit path (the --config flag)
//  2. $SANDBOXER_CONFIG
//  3. ./sandboxer.toml
//  4. $XDG_CONFIG_HOME/sandboxer/config.toml (or ~/.config/sandboxer/config.toml)
//
// A missing file is not an error: [Default] is used instead. Example:
//
//	[codesandbox]
//	host = "codesandbox.io"
//	default_file = "/example.tsx"
//
//	[resolve]
//	default_version = "latest"
//	reserved_prefixes = ["react-dom/"]
//
//	[[resolve.pins]]
//	prefix = "@fluentui/react-"
//	version = "^9.0.0-beta"
//
//	[defaults]
//	index_tsx = "..."
//	[defaults.required_dependencies]
//	react = "^17.0.0"
//
//	[cache]
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sandboxer/pkg/codesandbox"
	"github.com/matzehuels/sandboxer/pkg/deps"
	"github.com/matzehuels/sandboxer/pkg/errors"
)

const (
	appName = "sandboxer"

	// EnvVar names the environment variable holding a config path.
	EnvVar = "SANDBOXER_CONFIG"

	// LocalFile is the config file looked up in the working directory.
	LocalFile = "sandboxer.toml"

	// DefaultTTL is how long export results are cached.
	DefaultTTL = 24 * time.Hour

	// DefaultAddr is the HTTP listen address.
	DefaultAddr = ":8080"
)

// Config is the full configuration.
type Config struct {
	CodeSandbox CodeSandbox `toml:"codesandbox"`
	Resolve     Resolve     `toml:"resolve"`
	Defaults    Defaults    `toml:"defaults"`
	Cache       Cache       `toml:"cache"`
	Server      Server      `toml:"server"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// CodeSandbox configures the define URL.
type CodeSandbox struct {
	Host        string `toml:"host"`
	DefaultFile string `toml:"default_file"`
}

// Resolve configures dependency inference.
type Resolve struct {
	DefaultVersion   string     `toml:"default_version"`
	ReservedPrefixes []string   `toml:"reserved_prefixes"`
	Pins             []deps.Pin `toml:"pins"`
}

// Defaults holds fallback export options for stories that omit them.
type Defaults struct {
	RequiredDependencies deps.Map `toml:"required_dependencies"`
	IndexTsx             string   `toml:"index_tsx"`
}

// Cache configures result caching.
type Cache struct {
	TTL       string `toml:"ttl"`
	RedisAddr string `toml:"redis_addr"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return (&Config{}).WithDefaults()
}

// WithDefaults fills zero values with defaults and returns c.
func (c *Config) WithDefaults() *Config {
	if c.CodeSandbox.Host == "" {
		c.CodeSandbox.Host = codesandbox.DefaultHost
	}
	if c.CodeSandbox.DefaultFile == "" {
		c.CodeSandbox.DefaultFile = codesandbox.DefaultPreviewFile
	}
	if c.Resolve.DefaultVersion == "" {
		c.Resolve.DefaultVersion = deps.DefaultVersion
	}
	if c.Resolve.Pins == nil {
		c.Resolve.Pins = append([]deps.Pin(nil), deps.DefaultPins...)
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = DefaultTTL.String()
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	return c
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := errors.ValidateHost(c.CodeSandbox.Host); err != nil {
		return err
	}
	if err := errors.ValidatePath(c.CodeSandbox.DefaultFile); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "codesandbox.default_file")
	}
	for i, p := range c.Resolve.Pins {
		if p.Prefix == "" || p.Version == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "resolve.pins[%d]: prefix and version are required", i)
		}
	}
	for _, p := range c.Resolve.ReservedPrefixes {
		if p == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "resolve.reserved_prefixes: empty prefix")
		}
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	return nil
}

// TTL returns the parsed cache TTL.
func (c *Config) TTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return DefaultTTL, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.ttl")
	}
	if d <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	return d, nil
}

// DepsOptions converts the resolve section into resolver options.
func (c *Config) DepsOptions(logger func(string, ...any)) deps.Options {
	return deps.Options{
		ExtraReservedPrefixes: c.Resolve.ReservedPrefixes,
		Pins:                  c.Resolve.Pins,
		DefaultVersion:        c.Resolve.DefaultVersion,
		Logger:                logger,
	}
}

// Parse decodes TOML data and applies defaults.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	c.WithDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads the config at path, or searches the default locations when
// path is empty.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFile(path)
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return loadFile(p)
		}
	}
	return Default(), nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	c.Path = path
	return c, nil
}

// SearchPaths returns the implicit config locations in lookup order.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvVar); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, LocalFile)
	if dir := configDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, appName, "config.toml"))
	}
	return paths
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

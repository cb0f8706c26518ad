// Package cli implements the sandboxer command-line interface.
//
// Commands:
//   - export: build CodeSandbox links for story files
//   - resolve: print the dependency map of an example source file
//   - decode: unpack the files of a define URL
//   - serve: run the HTTP API
//   - cache: manage the export cache
//
// All commands accept --config and --verbose (-v). The logger travels on
// the command context.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sandboxer/pkg/buildinfo"
	"github.com/matzehuels/sandboxer/pkg/cache"
	"github.com/matzehuels/sandboxer/pkg/config"
	"github.com/matzehuels/sandboxer/pkg/pipeline"
)

const appName = "sandboxer"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
	config     *config.Config
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sandboxer turns documented examples into CodeSandbox projects",
		Long:         `Sandboxer resolves the dependencies of a documented UI example, assembles a standalone project and encodes it into a CodeSandbox define URL.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: search "+config.EnvVar+", ./"+config.LocalFile+", ~/.config/"+appName+"/config.toml)")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	c.config = cfg
	return cfg, nil
}

// pipelineOptions converts the configuration into export options.
func (c *CLI) pipelineOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Host:                cfg.CodeSandbox.Host,
		PreviewFile:         cfg.CodeSandbox.DefaultFile,
		Deps:                cfg.DepsOptions(func(format string, args ...any) { c.Logger.Warnf(format, args...) }),
		DefaultDependencies: cfg.Defaults.RequiredDependencies,
		DefaultIndexTsx:     cfg.Defaults.IndexTsx,
		Logger:              c.Logger,
	}
}

// newRunner creates a pipeline runner backed by the file cache.
func (c *CLI) newRunner(cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	ca, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ca, nil, c.Logger)
	if r.TTL, err = cfg.TTL(); err != nil {
		return nil, err
	}
	return r, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory ($XDG_CACHE_HOME/sandboxer or
// ~/.cache/sandboxer).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

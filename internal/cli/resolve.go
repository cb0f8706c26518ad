package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sandboxer/pkg/deps"
	"github.com/matzehuels/sandboxer/pkg/errors"
)

func (c *CLI) resolveCommand() *cobra.Command {
	var (
		basePath string
		pairs    []string
		jsonOut  bool
	)
	cmd := &cobra.Command{
		Use:   "resolve <source-file>",
		Short: "Print the dependency map of an example source file",
		Long: `Resolve the dependencies of an example source file.

The base mapping comes from --base (a package.json, whose dependencies,
devDependencies and peerDependencies are merged) and --dep name=version
flags, in that order. Without either, the [defaults] required_dependencies
of the config file are used.`,
		Example: `  sandboxer resolve src/Box.stories.tsx
  sandboxer resolve --base package.json --dep react=^17.0.0 src/Box.stories.tsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			src, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", args[0])
			}

			base, err := baseDependencies(basePath, pairs, cfg.Defaults.RequiredDependencies)
			if err != nil {
				return err
			}

			opts := c.pipelineOptions(cfg).Deps
			res, err := deps.ResolveDetailed(string(src), base, opts)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res.Dependencies)
			}
			printSuccess("%d dependencies", len(res.Dependencies))
			printDependencies(res.Dependencies, res.Sources)
			return nil
		},
	}

	cmd.Flags().StringVar(&basePath, "base", "", "package.json providing the base dependencies")
	cmd.Flags().StringArrayVar(&pairs, "dep", nil, "base dependency as name=version (repeatable)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the dependency map as JSON")
	return cmd
}

// baseDependencies builds the base mapping from a manifest and name=version
// pairs, or returns fallback when neither is given.
func baseDependencies(manifest string, pairs []string, fallback deps.Map) (deps.Map, error) {
	if manifest == "" && len(pairs) == 0 {
		if fallback == nil {
			return deps.Map{}, nil
		}
		return fallback.Clone(), nil
	}

	base := deps.Map{}
	if manifest != "" {
		parsed, err := deps.PackageJSON{}.Parse(manifest)
		if err != nil {
			return nil, err
		}
		base = parsed
	}
	for _, p := range pairs {
		name, version, ok := strings.Cut(p, "=")
		name, version = strings.TrimSpace(name), strings.TrimSpace(version)
		if !ok || name == "" || version == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid --dep %q (want name=version)", p)
		}
		if err := errors.ValidateNpmPackageName(name); err != nil {
			return nil, fmt.Errorf("--dep %s: %w", p, err)
		}
		base[name] = version
	}
	return base, nil
}

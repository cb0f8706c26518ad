package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sandboxer/pkg/button"
	"github.com/matzehuels/sandboxer/pkg/pipeline"
	"github.com/matzehuels/sandboxer/pkg/story"
)

type exportFlags struct {
	noCache     bool
	refresh     bool
	jsonOut     bool
	html        bool
	host        string
	previewFile string
	concurrency int
}

func (c *CLI) exportCommand() *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export <story-file>...",
		Short: "Build CodeSandbox links for story files",
		Long: `Build a CodeSandbox define URL for each story file (.json, .yaml or .yml).

A story file holds the rendering context of one example: its id, display
name, view mode and parameters (fullSource and exportToCodeSandbox).
Missing requiredDependencies and indexTsx fall back to the [defaults]
section of the config file.`,
		Example: `  sandboxer export stories/box.yaml
  sandboxer export --json stories/*.json
  sandboxer export --html --host sandbox.example.com stories/box.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args, f)
		},
	}

	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the export cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&f.html, "html", false, "print the button HTML")
	cmd.Flags().StringVar(&f.host, "host", "", "CodeSandbox host (overrides config)")
	cmd.Flags().StringVar(&f.previewFile, "preview-file", "", "file opened in the sandbox (overrides config)")
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "j", pipeline.DefaultConcurrency, "parallel exports")
	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, args []string, f exportFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	stories := make([]story.Context, 0, len(args))
	for _, path := range args {
		s, err := story.Load(path)
		if err != nil {
			return err
		}
		stories = append(stories, *s)
	}

	opts := c.pipelineOptions(cfg)
	opts.Refresh = f.refresh
	if f.host != "" {
		opts.Host = f.host
	}
	if f.previewFile != "" {
		opts.PreviewFile = f.previewFile
	}

	runner, err := c.newRunner(cfg, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var spin *Spinner
	if len(stories) > 1 && !f.jsonOut {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %d stories...", len(stories)))
		spin.Start()
	}
	results, err := runner.ExportAll(ctx, stories, opts, f.concurrency)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
	}

	if f.jsonOut {
		if err := writeResultsJSON(out, results); err != nil {
			return err
		}
	} else {
		for i, res := range results {
			if i > 0 {
				printNewline()
			}
			if err := printResult(&stories[i], res, f.html); err != nil {
				return err
			}
		}
	}

	prog.done(fmt.Sprintf("Exported %d of %d stories", len(results)-failed, len(results)))
	if failed > 0 {
		return fmt.Errorf("%d of %d exports failed", failed, len(results))
	}
	return nil
}

func printResult(s *story.Context, res *pipeline.Result, html bool) error {
	a := button.New(s.Selector())
	a.Apply(res)

	if html {
		h, err := a.HTML()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, h)
		return nil
	}

	fmt.Fprintln(out, StyleTitle.Render(res.StoryName))
	if !s.IsDocs() {
		printWarning("view mode %q: the button is only shown in docs", s.ViewMode)
	}
	if !res.OK() {
		printError("%s", res.Failure.Kind)
		printDetail("%s", res.Failure.Message)
		fmt.Fprintln(out, renderButton(a))
		return nil
	}
	printSuccess("%d dependencies", len(res.Dependencies))
	printDependencies(res.Dependencies, res.Sources)
	printCacheStatus(res.CacheHit)
	fmt.Fprintln(out, renderButton(a))
	return nil
}

func writeResultsJSON(w io.Writer, results []*pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}

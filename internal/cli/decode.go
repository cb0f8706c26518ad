package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sandboxer/pkg/codesandbox"
	"github.com/matzehuels/sandboxer/pkg/errors"
)

func (c *CLI) decodeCommand() *cobra.Command {
	var (
		file    string
		outDir  string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "decode <define-url|parameters|->",
		Short: "Show the files encoded in a CodeSandbox define URL",
		Example: `  sandboxer decode 'https://codesandbox.io/api/v1/sandboxes/define?parameters=...'
  sandboxer decode --file package.json "$URL"
  sandboxer decode --out ./sandbox "$URL"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := args[0]
			if raw == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				raw = string(data)
			}

			params, preview, err := codesandbox.ParseDefineURL(raw)
			if err != nil {
				return err
			}
			files, err := codesandbox.DecodeParameters(params)
			if err != nil {
				return err
			}

			switch {
			case file != "":
				f, ok := files[file]
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "no file %q in sandbox", file)
				}
				fmt.Fprint(out, f.Content)
				return nil
			case outDir != "":
				return writeFiles(outDir, files)
			case jsonOut:
				enc := json.NewEncoder(out)
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(files)
			}

			if preview != "" {
				printKeyValue("preview", preview)
			}
			for _, name := range slices.Sorted(maps.Keys(files)) {
				printNewline()
				fmt.Fprintln(out, StyleTitle.Render(name))
				fmt.Fprintln(out, strings.TrimRight(files[name].Content, "\n"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "print only this file")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write the files into this directory")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the files as JSON")
	return cmd
}

func writeFiles(dir string, files codesandbox.Files) error {
	for name, f := range files {
		if err := errors.ValidatePath("/" + name); err != nil {
			return err
		}
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(f.Content), 0644); err != nil {
			return err
		}
		printSuccess("%s", path)
	}
	return nil
}

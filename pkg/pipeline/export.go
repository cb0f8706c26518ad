package pipeline

import (
	"fmt"

	"github.com/matzehuels/sandboxer/pkg/codesandbox"
	"github.com/matzehuels/sandboxer/pkg/deps"
	"github.com/matzehuels/sandboxer/pkg/errors"
	"github.com/matzehuels/sandboxer/pkg/imports"
	"github.com/matzehuels/sandboxer/pkg/story"
)

// Export builds the define URL of one story.
//
// Checks run in a fixed order and the first one that fails ends the export:
// missing source, missing requiredDependencies, unresolved relative imports,
// missing indexTsx.
func Export(c story.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	c = c.WithDefaults(opts.DefaultDependencies, opts.DefaultIndexTsx)

	res := &Result{StoryID: c.ID, StoryName: c.Name}

	src := c.Parameters.FullSource
	if src == "" {
		res.Failure = fail(errors.ErrCodeMissingSource,
			fmt.Sprintf("Couldn’t find source for story %s. Did you install the babel plugin?", c.Name))
		return res, nil
	}

	base := c.RequiredDependencies()
	if base == nil {
		res.Failure = fail(errors.ErrCodeMissingConfiguration,
			"Please set parameters.exportToCodeSandbox.requiredDependencies.")
		return res, nil
	}

	resolved, err := deps.ResolveDetailed(src, base, opts.Deps)
	if err != nil {
		return nil, err
	}
	res.Dependencies = resolved.Dependencies
	res.Sources = resolved.Sources

	scanner := opts.Deps.Scanner
	example := scanner.Rewrite(src)
	if rel := scanner.RelativeImports(example); len(rel) > 0 {
		opts.Logger.Debug("unresolved relative imports", "story", c.Name, "imports", rel)
		res.Failure = fail(errors.ErrCodeUnresolvedRelativeImport, fmt.Sprintf(
			"Story %q contains relative import without defined package.\n"+
				"Please add the following comment to the end of each line with relative import:\n"+
				"// %s [package-name] [package-version]", c.Name, imports.AnnotationMarker))
		return res, nil
	}

	indexTsx, ok := c.IndexTsx()
	if !ok {
		res.Failure = fail(errors.ErrCodeMissingConfiguration,
			"Please set parameters.exportToCodeSandbox.indexTsx\nto the desired content of index.tsx file.")
		return res, nil
	}

	project := codesandbox.Project{
		Example:       example,
		EntryTemplate: indexTsx,
		StoryName:     c.Name,
		Dependencies:  res.Dependencies,
	}
	url, files, err := project.URL(opts.Host, opts.PreviewFile)
	if err != nil {
		return nil, err
	}
	res.URL = url
	res.Files = files
	return res, nil
}

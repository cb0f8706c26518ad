// Package pipeline turns a story into a CodeSandbox define URL.
//
// An export runs three forward-only stages:
//
//  1. Source: take the example source and export options from the story
//  2. Resolve: build the dependency map from annotations and imports
//  3. Assemble: rewrite imports, build the four project files, encode them
//
// [Export] is a pure function of its inputs. A story that cannot be exported
// is not an error: the returned [Result] carries a [Failure] describing why,
// so callers can still show an error state. Errors are reserved for invalid
// options and internal faults.
//
// [Runner] wraps Export with caching, logging and observability hooks, and
// is safe for concurrent use:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Export(ctx, story, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	if !res.OK() {
//	    logger.Error(res.Failure.Message)
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sandboxer/pkg/cache"
	"github.com/matzehuels/sandboxer/pkg/codesandbox"
	"github.com/matzehuels/sandboxer/pkg/deps"
	"github.com/matzehuels/sandboxer/pkg/errors"
)

// Options configures an export.
type Options struct {
	Host        string       `json:"host,omitempty"`         // Empty means codesandbox.DefaultHost
	PreviewFile string       `json:"preview_file,omitempty"` // Empty means codesandbox.DefaultPreviewFile
	Deps        deps.Options `json:"-"`

	// Fallbacks for stories without their own export options.
	DefaultDependencies deps.Map `json:"-"`
	DefaultIndexTsx     string   `json:"-"`

	Refresh bool        `json:"refresh,omitempty"` // Bypass the cache read
	Logger  *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Host == "" {
		o.Host = codesandbox.DefaultHost
	}
	if o.PreviewFile == "" {
		o.PreviewFile = codesandbox.DefaultPreviewFile
	}
	if err := errors.ValidateHost(o.Host); err != nil {
		return err
	}
	if err := errors.ValidatePath(o.PreviewFile); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Deps.Logger == nil {
		logger := o.Logger
		o.Deps.Logger = func(format string, args ...any) { logger.Warnf(format, args...) }
	}
	o.Deps = o.Deps.WithDefaults()
	o.validated = true
	return nil
}

// KeyOpts returns the cache key options of o.
func (o *Options) KeyOpts() cache.ExportKeyOpts {
	return cache.ExportKeyOpts{
		Host:             o.Host,
		PreviewFile:      o.PreviewFile,
		DefaultVersion:   o.Deps.DefaultVersion,
		ReservedPrefixes: o.Deps.ReservedPrefixes(),
		Pins:             o.Deps.Pins,
	}
}

// Failure explains why a story could not be exported.
type Failure struct {
	Kind    errors.Code `json:"kind"`
	Message string      `json:"message"`
}

func (f *Failure) Error() string {
	return string(f.Kind) + ": " + f.Message
}

func fail(kind errors.Code, message string) *Failure {
	return &Failure{Kind: kind, Message: message}
}

// Result is the outcome of an export. Exactly one of URL and Failure is set.
type Result struct {
	StoryID      string                 `json:"story_id"`
	StoryName    string                 `json:"story"`
	URL          string                 `json:"url,omitempty"`
	Files        codesandbox.Files      `json:"files,omitempty"`
	Dependencies deps.Map               `json:"dependencies,omitempty"`
	Sources      map[string]deps.Source `json:"sources,omitempty"`
	Failure      *Failure               `json:"failure,omitempty"`

	CacheHit bool          `json:"cache_hit"`
	Duration time.Duration `json:"-"`
}

// OK reports whether the export produced a URL.
func (r *Result) OK() bool {
	return r.Failure == nil
}

// Err returns the failure as a coded error, or nil.
func (r *Result) Err() error {
	if r.Failure == nil {
		return nil
	}
	return errors.New(r.Failure.Kind, "%s", r.Failure.Message)
}

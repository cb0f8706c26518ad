package deps

import (
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/sandboxer/pkg/errors"
	"github.com/matzehuels/sandboxer/pkg/imports"
)

const (
	// DefaultVersion is assigned to inferred packages that match no pin.
	DefaultVersion = "latest"

	// ReservedPrefix is the host framework sub-path namespace that is never
	// inferred as a dependency.
	ReservedPrefix = "react/"
)

// DefaultPins pins namespaces that only publish pre-release versions.
var DefaultPins = []Pin{
	{Prefix: "@fluentui/react-", Version: "^9.0.0-beta"},
}

// Map is a dependency mapping from package name to version specifier.
type Map map[string]string

// Clone returns a copy of m. Cloning a nil map returns an empty map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	maps.Copy(out, m)
	return out
}

// Names returns the package names in sorted order.
func (m Map) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

// Pin assigns a fixed version to every inferred package under Prefix.
type Pin struct {
	Prefix  string `toml:"prefix" json:"prefix" yaml:"prefix"`
	Version string `toml:"version" json:"version" yaml:"version"`
}

// Source records how an entry of a resolved [Map] was obtained.
type Source string

const (
	SourceBase       Source = "base"       // Supplied by the caller
	SourceAnnotation Source = "annotation" // From a codesandbox-dependency comment
	SourcePinned     Source = "pinned"     // Inferred from an import, pinned namespace
	SourceDefault    Source = "default"    // Inferred from an import, default version
)

// Options configures dependency resolution.
type Options struct {
	// ExtraReservedPrefixes are exempted from inference in addition to
	// [ReservedPrefix], which is always reserved.
	ExtraReservedPrefixes []string
	Pins                  []Pin                // Nil means DefaultPins
	DefaultVersion        string               // Empty means DefaultVersion
	Scanner               imports.Scanner      // Nil means imports.Default
	Logger                func(string, ...any) // Warning callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Pins == nil {
		opts.Pins = DefaultPins
	}
	if opts.DefaultVersion == "" {
		opts.DefaultVersion = DefaultVersion
	}
	if opts.Scanner == nil {
		opts.Scanner = imports.Default
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// ReservedPrefixes returns every prefix exempted from inference.
func (o Options) ReservedPrefixes() []string {
	return append([]string{ReservedPrefix}, o.ExtraReservedPrefixes...)
}

// IsReserved reports whether spec lies in a reserved namespace.
func (o Options) IsReserved(spec string) bool {
	for _, p := range o.ReservedPrefixes() {
		if strings.HasPrefix(spec, p) {
			return true
		}
	}
	return false
}

// Infer returns the version assigned to an imported package that is not yet
// in the map, and the source of that version.
func (o Options) Infer(spec string) (string, Source) {
	o = o.WithDefaults()
	for _, pin := range o.Pins {
		if strings.HasPrefix(spec, pin.Prefix) {
			return pin.Version, SourcePinned
		}
	}
	return o.DefaultVersion, SourceDefault
}

// Resolution is a resolved dependency map together with the provenance of
// each entry.
type Resolution struct {
	Dependencies Map
	Sources      map[string]Source
}

// Resolve computes the dependency map of an example.
//
// The map starts as a copy of base, which is required. Annotation comments
// are applied in source order, later ones winning, and then every import of
// the rewritten source that is not relative, not reserved and not yet present
// is added with a pinned or default version. Entries are only ever added or
// overwritten by annotations, never removed.
func Resolve(src string, base Map, opts Options) (Map, error) {
	r, err := ResolveDetailed(src, base, opts)
	if err != nil {
		return nil, err
	}
	return r.Dependencies, nil
}

// ResolveDetailed is [Resolve] with per-entry provenance.
func ResolveDetailed(src string, base Map, opts Options) (*Resolution, error) {
	if base == nil {
		return nil, errors.New(errors.ErrCodeMissingConfiguration,
			"Please set parameters.exportToCodeSandbox.requiredDependencies.")
	}
	opts = opts.WithDefaults()

	res := &Resolution{
		Dependencies: base.Clone(),
		Sources:      make(map[string]Source, len(base)),
	}
	for name := range base {
		res.Sources[name] = SourceBase
	}

	for _, a := range opts.Scanner.Annotations(src) {
		if err := errors.ValidateNpmPackageName(a.Name); err != nil {
			opts.Logger("suspicious codesandbox-dependency annotation: %s", errors.UserMessage(err))
		}
		res.Dependencies[a.Name] = a.Version
		res.Sources[a.Name] = SourceAnnotation
	}

	for _, spec := range opts.Scanner.Specifiers(opts.Scanner.Rewrite(src)) {
		if imports.IsRelative(spec) || opts.IsReserved(spec) {
			continue
		}
		if _, ok := res.Dependencies[spec]; ok {
			continue
		}
		version, source := opts.Infer(spec)
		res.Dependencies[spec] = version
		res.Sources[spec] = source
	}

	return res, nil
}

package imports

import (
	"regexp"
	"strings"
)

// AnnotationMarker is the comment token that introduces a dependency annotation.
const AnnotationMarker = "codesandbox-dependency:"

// Annotation is a dependency declared by a trailing comment on an import line.
type Annotation struct {
	Name    string // Package name
	Version string // Version specifier, e.g. "^1.2.3" or "latest"
}

// Scanner extracts imports and dependency annotations from example source.
type Scanner interface {
	// Annotations returns the dependency annotations in source order.
	Annotations(src string) []Annotation
	// Specifiers returns the module specifier of every import statement in source order.
	Specifiers(src string) []string
	// Rewrite replaces annotated imports with plain imports of the annotated
	// package. Lines without an annotation are returned unchanged.
	Rewrite(src string) string
	// RelativeImports returns the specifiers of imports that start with ".".
	RelativeImports(src string) []string
}

var (
	annotationRe = regexp.MustCompile(` from '.*?'; // ` + regexp.QuoteMeta(AnnotationMarker) + ` (.*?) (.*)`)
	importRe     = regexp.MustCompile(`import .* from ['"](.*?)['"];`)
	relativeRe   = regexp.MustCompile(`import .* from ['"](\..*?)['"]`)
)

// RegexScanner is the regular-expression based [Scanner].
type RegexScanner struct{}

// Default is the scanner used when none is configured.
var Default Scanner = RegexScanner{}

func (RegexScanner) Annotations(src string) []Annotation {
	var out []Annotation
	for _, m := range annotationRe.FindAllStringSubmatch(src, -1) {
		out = append(out, Annotation{
			Name:    m[1],
			Version: strings.TrimSpace(m[2]),
		})
	}
	return out
}

func (RegexScanner) Specifiers(src string) []string {
	var out []string
	for _, m := range importRe.FindAllStringSubmatch(src, -1) {
		out = append(out, m[1])
	}
	return out
}

func (RegexScanner) Rewrite(src string) string {
	return annotationRe.ReplaceAllString(src, " from '${1}';")
}

func (RegexScanner) RelativeImports(src string) []string {
	var out []string
	for _, m := range relativeRe.FindAllStringSubmatch(src, -1) {
		out = append(out, m[1])
	}
	return out
}

// IsRelative reports whether spec is a relative module specifier.
func IsRelative(spec string) bool {
	return strings.HasPrefix(spec, ".")
}

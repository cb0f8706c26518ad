// Package story describes the host rendering context of a documented example.
//
// A [Context] is what the documentation tool hands to a decorator for each
// rendered example: an identifier, a display name, the current view mode and
// a parameters bag. Contexts can be loaded from JSON or YAML files so the
// CLI and the HTTP API accept the same shape:
//
//	id: components-box--default
//	story: Default
//	viewMode: docs
//	parameters:
//	  fullSource: |
//	    import Box from '@fluentui/react-box';
//	  exportToCodeSandbox:
//	    requiredDependencies:
//	      react: ^17.0.0
//	    indexTsx: |
//	      import { STORY_NAME as Example } from './example';
package story

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sandboxer/pkg/deps"
	"github.com/matzehuels/sandboxer/pkg/errors"
)

// ViewModeDocs is the view mode in which the export button is shown.
const ViewModeDocs = "docs"

// Context is the per-example rendering context.
type Context struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"story" yaml:"story"`
	ViewMode   string     `json:"viewMode,omitempty" yaml:"viewMode,omitempty"`
	Parameters Parameters `json:"parameters" yaml:"parameters"`
}

// Parameters is the parameters bag of a story.
type Parameters struct {
	FullSource          string         `json:"fullSource,omitempty" yaml:"fullSource,omitempty"`
	ExportToCodeSandbox *ExportOptions `json:"exportToCodeSandbox,omitempty" yaml:"exportToCodeSandbox,omitempty"`
}

// ExportOptions holds the export settings supplied by the host.
type ExportOptions struct {
	RequiredDependencies deps.Map `json:"requiredDependencies" yaml:"requiredDependencies"`
	IndexTsx             *string  `json:"indexTsx" yaml:"indexTsx"`
}

// IsDocs reports whether the story is rendered in the docs view.
func (c *Context) IsDocs() bool {
	return c.ViewMode == ViewModeDocs
}

// RequiredDependencies returns the host supplied base mapping, or nil.
func (c *Context) RequiredDependencies() deps.Map {
	if c.Parameters.ExportToCodeSandbox == nil {
		return nil
	}
	return c.Parameters.ExportToCodeSandbox.RequiredDependencies
}

// IndexTsx returns the entry boilerplate and whether it was supplied.
func (c *Context) IndexTsx() (string, bool) {
	if c.Parameters.ExportToCodeSandbox == nil || c.Parameters.ExportToCodeSandbox.IndexTsx == nil {
		return "", false
	}
	return *c.Parameters.ExportToCodeSandbox.IndexTsx, true
}

// WithDefaults fills missing export options from fallback values. Values
// present on the story always win.
func (c Context) WithDefaults(required deps.Map, indexTsx string) Context {
	opts := ExportOptions{}
	if c.Parameters.ExportToCodeSandbox != nil {
		opts = *c.Parameters.ExportToCodeSandbox
	}
	if opts.RequiredDependencies == nil && required != nil {
		opts.RequiredDependencies = required.Clone()
	}
	if opts.IndexTsx == nil && indexTsx != "" {
		opts.IndexTsx = &indexTsx
	}
	c.Parameters.ExportToCodeSandbox = &opts
	return c
}

// Selector returns the CSS selector of the container the button is mounted in.
func (c *Context) Selector() string {
	return "#anchor--" + c.ID + " .docs-story"
}

// Load reads a story context from a .json, .yaml or .yml file.
func Load(path string) (*Context, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read story %s", path)
	}
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported story file: %s (use .json, .yaml or .yml)", filepath.Base(path))
	}
}

// DecodeJSON parses a JSON story context.
func DecodeJSON(data []byte) (*Context, error) {
	var c Context
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse story JSON")
	}
	return &c, nil
}

// DecodeYAML parses a YAML story context.
func DecodeYAML(data []byte) (*Context, error) {
	var c Context
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse story YAML")
	}
	return &c, nil
}

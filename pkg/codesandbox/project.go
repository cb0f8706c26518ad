package codesandbox

import (
	"strings"

	"github.com/matzehuels/sandboxer/pkg/deps"
)

// Project file names.
const (
	ExampleFile = "example.tsx"
	HTMLFile    = "index.html"
	EntryFile   = "index.tsx"
)

// StoryNamePlaceholder is replaced in the entry boilerplate by the story name.
const StoryNamePlaceholder = "STORY_NAME"

// HTMLShell is the content of index.html.
const HTMLShell = `<div id="root"></div>`

// Project describes the minimal standalone project built for one example.
type Project struct {
	Example       string   // Rewritten example source
	EntryTemplate string   // Entry boilerplate containing StoryNamePlaceholder
	StoryName     string   // Display name of the example
	Dependencies  deps.Map // Resolved dependency map
}

// ComponentName returns the story name with all whitespace removed.
func ComponentName(storyName string) string {
	return strings.Join(strings.Fields(storyName), "")
}

// Entry returns the entry file content with every placeholder substituted.
func (p Project) Entry() string {
	return strings.ReplaceAll(p.EntryTemplate, StoryNamePlaceholder, ComponentName(p.StoryName))
}

// Files assembles the four project files.
func (p Project) Files() (Files, error) {
	manifest, err := deps.Manifest{Dependencies: p.Dependencies}.JSON()
	if err != nil {
		return nil, err
	}
	return Files{
		ExampleFile:       {Content: p.Example},
		HTMLFile:          {Content: HTMLShell},
		EntryFile:         {Content: p.Entry()},
		deps.ManifestFile: {Content: manifest},
	}, nil
}

// URL assembles, encodes and returns the define URL of the project.
func (p Project) URL(host, previewFile string) (string, Files, error) {
	files, err := p.Files()
	if err != nil {
		return "", nil, err
	}
	params, err := Parameters(files)
	if err != nil {
		return "", nil, err
	}
	return DefineURL(host, params, previewFile), files, nil
}

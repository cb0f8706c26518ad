package story

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/sandboxer/pkg/deps"
	"github.com/matzehuels/sandboxer/pkg/errors"
)

const yamlStory = `id: components-box--default
story: My Example
viewMode: docs
parameters:
  fullSource: |
    import Box from '@fluentui/react-box';
  exportToCodeSandbox:
    requiredDependencies:
      react: ^17.0.0
    indexTsx: |
      import { STORY_NAME as Example } from './example';
`

const jsonStory = `{
  "id": "components-box--default",
  "story": "My Example",
  "viewMode": "docs",
  "parameters": {
    "fullSource": "import Box from '@fluentui/react-box';\n",
    "exportToCodeSandbox": {
      "requiredDependencies": {"react": "^17.0.0"},
      "indexTsx": "import { STORY_NAME as Example } from './example';\n"
    }
  }
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FormatsAgree(t *testing.T) {
	fromYAML, err := Load(writeFile(t, "story.yaml", yamlStory))
	if err != nil {
		t.Fatalf("Load(yaml) error: %v", err)
	}
	fromJSON, err := Load(writeFile(t, "story.json", jsonStory))
	if err != nil {
		t.Fatalf("Load(json) error: %v", err)
	}
	if !reflect.DeepEqual(fromYAML, fromJSON) {
		t.Errorf("yaml and json stories differ:\n%#v\n%#v", fromYAML, fromJSON)
	}

	c := fromYAML
	if c.ID != "components-box--default" || c.Name != "My Example" || !c.IsDocs() {
		t.Errorf("unexpected context: %#v", c)
	}
	if got := c.RequiredDependencies(); !reflect.DeepEqual(got, deps.Map{"react": "^17.0.0"}) {
		t.Errorf("RequiredDependencies() = %v", got)
	}
	if idx, ok := c.IndexTsx(); !ok || idx == "" {
		t.Errorf("IndexTsx() = %q, %v", idx, ok)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := Load(writeFile(t, "story.toml", "id = 1")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unsupported extension error = %v", err)
	}
	if _, err := Load(writeFile(t, "story.json", "{")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad json error = %v", err)
	}
	if _, err := Load(writeFile(t, "story.yml", "id: [unclosed")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad yaml error = %v", err)
	}
}

func TestContext_MissingExportOptions(t *testing.T) {
	c := &Context{ID: "x", Name: "X"}
	if c.RequiredDependencies() != nil {
		t.Error("RequiredDependencies() should be nil without export options")
	}
	if _, ok := c.IndexTsx(); ok {
		t.Error("IndexTsx() should report absence without export options")
	}
	if c.IsDocs() {
		t.Error("empty view mode is not docs")
	}
}

func TestContext_EmptyIndexTsxIsPresent(t *testing.T) {
	c, err := DecodeJSON([]byte(`{"parameters":{"exportToCodeSandbox":{"requiredDependencies":{},"indexTsx":""}}}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.IndexTsx(); !ok {
		t.Error("empty indexTsx should count as supplied")
	}
	if c.RequiredDependencies() == nil {
		t.Error("empty requiredDependencies should count as supplied")
	}
}

func TestContext_WithDefaults(t *testing.T) {
	idx := "story"
	withOwn := Context{Parameters: Parameters{ExportToCodeSandbox: &ExportOptions{
		RequiredDependencies: deps.Map{"react": "^18.0.0"},
		IndexTsx:             &idx,
	}}}
	got := withOwn.WithDefaults(deps.Map{"react": "^17.0.0"}, "fallback")
	if got.RequiredDependencies()["react"] != "^18.0.0" {
		t.Errorf("story dependencies should win, got %v", got.RequiredDependencies())
	}
	if v, _ := got.IndexTsx(); v != "story" {
		t.Errorf("story indexTsx should win, got %q", v)
	}

	bare := Context{}
	got = bare.WithDefaults(deps.Map{"react": "^17.0.0"}, "fallback")
	if got.RequiredDependencies()["react"] != "^17.0.0" {
		t.Errorf("fallback dependencies not applied: %v", got.RequiredDependencies())
	}
	if v, ok := got.IndexTsx(); !ok || v != "fallback" {
		t.Errorf("fallback indexTsx not applied: %q", v)
	}
	if bare.Parameters.ExportToCodeSandbox != nil {
		t.Error("WithDefaults must not modify the receiver")
	}

	none := Context{}.WithDefaults(nil, "")
	if none.RequiredDependencies() != nil {
		t.Error("nil fallback should leave dependencies absent")
	}
	if _, ok := none.IndexTsx(); ok {
		t.Error("empty fallback should leave indexTsx absent")
	}
}

func TestContext_Selector(t *testing.T) {
	c := &Context{ID: "components-box--default"}
	if got := c.Selector(); got != "#anchor--components-box--default .docs-story" {
		t.Errorf("Selector() = %q", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/sandboxer/pkg/codesandbox"
	"github.com/matzehuels/sandboxer/pkg/deps"
	"github.com/matzehuels/sandboxer/pkg/errors"
)

const sample = `
[codesandbox]
host = "sandbox.example.com"
default_file = "/src/App.tsx"

[resolve]
default_version = "*"
reserved_prefixes = ["react-dom/"]

[[resolve.pins]]
prefix = "@acme/"
version = "^2.0.0"

[defaults]
index_tsx = "render(<STORY_NAME />)"

[defaults.required_dependencies]
react = "^17.0.0"

[cache]
ttl = "1h"
redis_addr = "localhost:6379"

[server]
addr = ":9090"
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if c.CodeSandbox.Host != "sandbox.example.com" || c.CodeSandbox.DefaultFile != "/src/App.tsx" {
		t.Errorf("codesandbox = %+v", c.CodeSandbox)
	}
	if c.Resolve.DefaultVersion != "*" {
		t.Errorf("default_version = %q", c.Resolve.DefaultVersion)
	}
	if want := []deps.Pin{{Prefix: "@acme/", Version: "^2.0.0"}}; !reflect.DeepEqual(c.Resolve.Pins, want) {
		t.Errorf("pins = %v, want %v", c.Resolve.Pins, want)
	}
	if !reflect.DeepEqual(c.Defaults.RequiredDependencies, deps.Map{"react": "^17.0.0"}) {
		t.Errorf("required_dependencies = %v", c.Defaults.RequiredDependencies)
	}
	if c.Defaults.IndexTsx != "render(<STORY_NAME />)" {
		t.Errorf("index_tsx = %q", c.Defaults.IndexTsx)
	}
	if ttl, _ := c.TTL(); ttl != time.Hour {
		t.Errorf("TTL() = %v", ttl)
	}
	if c.Cache.RedisAddr != "localhost:6379" || c.Server.Addr != ":9090" {
		t.Errorf("cache/server = %+v %+v", c.Cache, c.Server)
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.CodeSandbox.Host != codesandbox.DefaultHost {
		t.Errorf("host = %q", c.CodeSandbox.Host)
	}
	if c.CodeSandbox.DefaultFile != codesandbox.DefaultPreviewFile {
		t.Errorf("default_file = %q", c.CodeSandbox.DefaultFile)
	}
	if c.Resolve.DefaultVersion != deps.DefaultVersion {
		t.Errorf("default_version = %q", c.Resolve.DefaultVersion)
	}
	if !reflect.DeepEqual(c.Resolve.Pins, deps.DefaultPins) {
		t.Errorf("pins = %v", c.Resolve.Pins)
	}
	if ttl, err := c.TTL(); err != nil || ttl != DefaultTTL {
		t.Errorf("TTL() = %v, %v", ttl, err)
	}
	if c.Server.Addr != DefaultAddr {
		t.Errorf("addr = %q", c.Server.Addr)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[codesandbox"},
		{"host with scheme", "[codesandbox]\nhost = \"https://codesandbox.io\""},
		{"relative default file", "[codesandbox]\ndefault_file = \"example.tsx\""},
		{"incomplete pin", "[[resolve.pins]]\nprefix = \"@acme/\""},
		{"empty reserved prefix", "[resolve]\nreserved_prefixes = [\"\"]"},
		{"bad ttl", "[cache]\nttl = \"soon\""},
		{"negative ttl", "[cache]\nttl = \"-1h\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestDepsOptions(t *testing.T) {
	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	opts := c.DepsOptions(nil)
	if !opts.IsReserved("react-dom/client") || !opts.IsReserved("react/jsx-runtime") {
		t.Error("configured and built-in reserved prefixes should both apply")
	}
	if v, src := opts.Infer("@acme/widgets"); v != "^2.0.0" || src != deps.SourcePinned {
		t.Errorf("Infer(@acme/widgets) = %q, %q", v, src)
	}
	if v, src := opts.Infer("lodash"); v != "*" || src != deps.SourceDefault {
		t.Errorf("Infer(lodash) = %q, %q", v, src)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Path != path {
		t.Errorf("Path = %q, want %q", c.Path, path)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit config error = %v", err)
	}
}

func TestLoad_Search(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv(EnvVar, "")

	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Path != "" || c.CodeSandbox.Host != codesandbox.DefaultHost {
		t.Errorf("expected defaults without any config file, got %+v", c)
	}

	xdg := filepath.Join(dir, "xdg", appName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(xdg), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(xdg, []byte("[server]\naddr = \":1\""), 0644); err != nil {
		t.Fatal(err)
	}
	if c, err = Load(""); err != nil || c.Server.Addr != ":1" {
		t.Fatalf("xdg config not picked up: %+v, %v", c, err)
	}

	if err := os.WriteFile(LocalFile, []byte("[server]\naddr = \":2\""), 0644); err != nil {
		t.Fatal(err)
	}
	if c, err = Load(""); err != nil || c.Server.Addr != ":2" {
		t.Fatalf("local config should win over xdg: %+v, %v", c, err)
	}

	env := filepath.Join(dir, "env.toml")
	if err := os.WriteFile(env, []byte("[server]\naddr = \":3\""), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvVar, env)
	if c, err = Load(""); err != nil || c.Server.Addr != ":3" {
		t.Fatalf("env config should win over local: %+v, %v", c, err)
	}
}

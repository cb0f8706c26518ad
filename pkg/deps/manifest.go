package deps

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/sandboxer/pkg/errors"
)

// ManifestFile is the file name of the generated sandbox manifest.
const ManifestFile = "package.json"

// Manifest is the package.json written into a sandbox project.
type Manifest struct {
	Dependencies Map `json:"dependencies"`
}

// JSON serializes the manifest compactly, with HTML characters unescaped
// and keys sorted.
func (m Manifest) JSON() (string, error) {
	deps := m.Dependencies
	if deps == nil {
		deps = Map{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Manifest{Dependencies: deps}); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize manifest")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// PackageJSON reads a base dependency mapping from an existing package.json.
// It merges dependencies, devDependencies and peerDependencies, with
// dependencies taking precedence.
type PackageJSON struct{}

func (PackageJSON) Type() string              { return ManifestFile }
func (PackageJSON) Supports(name string) bool { return strings.EqualFold(name, ManifestFile) }

// Parse reads the package.json at path.
func (p PackageJSON) Parse(path string) (Map, error) {
	if !p.Supports(filepath.Base(path)) {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported manifest: %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, err
	}
	return ParsePackageJSON(data)
}

// ParsePackageJSON extracts the dependency mapping from package.json content.
func ParsePackageJSON(data []byte) (Map, error) {
	var pkg packageFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse package.json")
	}

	out := Map{}
	for _, m := range []map[string]string{pkg.PeerDependencies, pkg.DevDependencies, pkg.Dependencies} {
		for name, version := range m {
			out[name] = version
		}
	}
	return out, nil
}

type packageFile struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

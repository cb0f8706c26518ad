package cache

import "github.com/matzehuels/sandboxer/pkg/deps"

// Keyer produces cache keys.
type Keyer interface {
	// ExportKey identifies an export result.
	ExportKey(storyHash string, opts ExportKeyOpts) string
}

// ExportKeyOpts are the settings that change an export result.
type ExportKeyOpts struct {
	Host             string     `json:"host"`
	PreviewFile      string     `json:"preview_file"`
	DefaultVersion   string     `json:"default_version"`
	ReservedPrefixes []string   `json:"reserved_prefixes"`
	Pins             []deps.Pin `json:"pins"`
}

// DefaultKeyer hashes its inputs under fixed prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ExportKey(storyHash string, opts ExportKeyOpts) string {
	return hashKey("export", storyHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, so several
// deployments can share one Redis database.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ExportKey(storyHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(storyHash, opts)
}

package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. Failed exports
// and 5xx responses are logged as warnings.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnExportStart(_ context.Context, storyID string) {
	h.logger.Debug("export started", "story", storyID)
}

func (h *LogHooks) OnExportComplete(_ context.Context, storyID, kind string, d time.Duration) {
	if kind != "" {
		h.logger.Warn("export failed", "story", storyID, "kind", kind, "duration", d)
		return
	}
	h.logger.Debug("export complete", "story", storyID, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Warn("response", "method", method, "path", path, "status", status, "duration", d)
		return
	}
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ ExportHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)

package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopExportHooks{}
	e.OnExportStart(ctx, "components-box--default")
	e.OnExportComplete(ctx, "components-box--default", "", time.Second)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "export")
	c.OnCacheMiss(ctx, "export")
	c.OnCacheSet(ctx, "export", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/v1/export")
	h.OnResponse(ctx, "POST", "/api/v1/export", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Export() should return NoopExportHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	rec := &recorder{}
	SetExportHooks(rec)
	SetCacheHooks(rec)
	SetHTTPHooks(rec)
	if Export() != rec || Cache() != rec || HTTP() != rec {
		t.Error("Set*Hooks should register custom hooks")
	}

	SetExportHooks(nil)
	if Export() != rec {
		t.Error("SetExportHooks(nil) should be ignored")
	}

	Export().OnExportComplete(context.Background(), "s", "MISSING_SOURCE", 0)
	if len(rec.kinds) != 1 || rec.kinds[0] != "MISSING_SOURCE" {
		t.Errorf("recorded kinds = %v", rec.kinds)
	}

	Reset()
	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Reset() should restore defaults")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnExportStart(ctx, "box--default")
	h.OnExportComplete(ctx, "box--default", "UNRESOLVED_RELATIVE_IMPORT", time.Millisecond)
	h.OnCacheMiss(ctx, "export")
	h.OnResponse(ctx, "POST", "/api/v1/export", 500, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"export started", "export failed", "UNRESOLVED_RELATIVE_IMPORT", "cache miss", "status=500"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooks_InfoLevelHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	ctx := context.Background()

	h.OnExportComplete(ctx, "s", "", time.Millisecond)
	h.OnCacheHit(ctx, "export")
	if buf.Len() != 0 {
		t.Errorf("debug events should be hidden at info level: %q", buf.String())
	}

	h.OnExportComplete(ctx, "s", "MISSING_SOURCE", time.Millisecond)
	if !strings.Contains(buf.String(), "export failed") {
		t.Error("failures should be logged at info level")
	}
}

type recorder struct {
	NoopExportHooks
	NoopCacheHooks
	NoopHTTPHooks
	kinds []string
}

func (r *recorder) OnExportComplete(_ context.Context, _, kind string, _ time.Duration) {
	r.kinds = append(r.kinds, kind)
}

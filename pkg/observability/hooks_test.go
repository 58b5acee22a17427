package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	loads    int
	renders  int
	rewrites int
}

func (h *recordingPipelineHooks) OnLoadStart(ctx context.Context, source string) { h.loads++ }
func (h *recordingPipelineHooks) OnRenderStart(ctx context.Context, formats []string) {
	h.renders++
}
func (h *recordingPipelineHooks) OnSimplifyComplete(ctx context.Context, n int, d time.Duration) {
	h.rewrites += n
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(ctx context.Context, keyType string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(ctx context.Context, keyType string) { h.misses++ }

func TestSetPipelineHooks(t *testing.T) {
	defer Reset()
	ctx := context.Background()

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)

	Pipeline().OnLoadStart(ctx, "diagram.json")
	Pipeline().OnRenderStart(ctx, []string{"svg"})
	Pipeline().OnSimplifyComplete(ctx, 3, time.Millisecond)

	if rec.loads != 1 || rec.renders != 1 || rec.rewrites != 3 {
		t.Errorf("hooks not invoked: loads=%d renders=%d rewrites=%d",
			rec.loads, rec.renders, rec.rewrites)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()
	ctx := context.Background()

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")

	if rec.hits != 1 || rec.misses != 2 {
		t.Errorf("cache hooks not invoked: hits=%d misses=%d", rec.hits, rec.misses)
	}
}

func TestSetNilHookIgnored(t *testing.T) {
	defer Reset()
	SetPipelineHooks(nil)
	SetCacheHooks(nil)
	// Defaults must survive a nil registration.
	Pipeline().OnLoadStart(context.Background(), "x")
	Cache().OnCacheHit(context.Background(), "x")
}

func TestReset(t *testing.T) {
	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)
	Reset()

	Pipeline().OnLoadStart(context.Background(), "x")
	if rec.loads != 0 {
		t.Error("Reset did not restore no-op hooks")
	}
}

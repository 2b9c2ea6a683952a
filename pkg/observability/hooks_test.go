package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopResolveHooks{}
	r.OnDecodeStart(ctx, "frames.json")
	r.OnDecodeComplete(ctx, "frames.json", 12, time.Millisecond, nil)
	r.OnResolveStart(ctx, 12)
	r.OnResolveComplete(ctx, ResolveStats{Frames: 12, Passes: 1}, time.Millisecond, nil)
	r.OnCycleFallback(ctx, 2)
	r.OnDepthExceeded(ctx, "Tooltip")

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "resolve")
	c.OnCacheMiss(ctx, "resolve")
	c.OnCacheSet(ctx, "resolve", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/resolve")
	h.OnResponse(ctx, "POST", "/v1/resolve", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Resolve().(NoopResolveHooks); !ok {
		t.Error("Resolve() should return NoopResolveHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customResolve := &testResolveHooks{}
	SetResolveHooks(customResolve)
	if Resolve() != customResolve {
		t.Error("SetResolveHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Resolve().(NoopResolveHooks); !ok {
		t.Error("Reset() should restore NoopResolveHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testResolveHooks{}
	SetResolveHooks(custom)
	SetResolveHooks(nil)

	if Resolve() != custom {
		t.Error("SetResolveHooks(nil) should be ignored")
	}

	Reset()
}

type testResolveHooks struct {
	NoopResolveHooks
	cycles int
}
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

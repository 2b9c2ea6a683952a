package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorlayout/pkg/observability"
)

// logHooks reports pipeline, cache and HTTP events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

// RegisterLogHooks routes observability events to logger at debug level.
func RegisterLogHooks(logger *log.Logger) {
	h := logHooks{logger: logger.WithPrefix("hooks")}
	observability.SetResolveHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnDecodeStart(_ context.Context, source string) {
	h.logger.Debug("decode start", "source", source)
}

func (h logHooks) OnDecodeComplete(_ context.Context, source string, frames int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("decode failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("decode complete", "source", source, "frames", frames, "duration", d)
}

func (h logHooks) OnResolveStart(_ context.Context, frames int) {
	h.logger.Debug("resolve start", "frames", frames)
}

func (h logHooks) OnResolveComplete(_ context.Context, s observability.ResolveStats, d time.Duration, _ error) {
	h.logger.Debug("resolve complete", "frames", s.Frames, "rejected", s.Rejected, "passes", s.Passes, "cyclic", s.Cyclic, "duration", d)
}

func (h logHooks) OnCycleFallback(_ context.Context, size int) {
	h.logger.Debug("cycle fallback", "size", size)
}

func (h logHooks) OnDepthExceeded(_ context.Context, frame string) {
	h.logger.Debug("depth exceeded", "frame", frame)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("request", "method", method, "route", path, "status", status, "duration", d)
}

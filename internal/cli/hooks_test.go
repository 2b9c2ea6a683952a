package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/anchorlayout/pkg/observability"
)

func TestRegisterLogHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	RegisterLogHooks(newLogger(&buf, log.DebugLevel))

	ctx := context.Background()
	observability.Cache().OnCacheHit(ctx, "resolve")
	observability.Resolve().OnCycleFallback(ctx, 3)

	out := buf.String()
	assert.Contains(t, out, "cache hit")
	assert.Contains(t, out, "type=resolve")
	assert.Contains(t, out, "cycle fallback")
	assert.Contains(t, out, "size=3")
}

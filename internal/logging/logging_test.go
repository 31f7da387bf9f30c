package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrNop(t *testing.T) {
	l := OrNop(nil)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	assert.NotPanics(t, func() { l.With("k", "v").WithGroup("g").Info("dropped") })

	var buf bytes.Buffer
	real := slog.New(slog.NewTextHandler(&buf, nil))
	assert.Same(t, real, OrNop(real))
}

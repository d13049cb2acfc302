package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLevelHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	log.Debug("hidden")
	log.Warn("shown", "k", 1)

	assert.Equal(t, DefaultLevel, log.Level())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=1")
}

func TestNew_WithDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, WithDebug(true))

	log.Debug("parsed document", "result", "ok")

	assert.Equal(t, LevelDebug, log.Level())
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "result=ok")

	// WithDebug(false) leaves the level alone
	assert.Equal(t, LevelInfo, New(&buf, WithLevel(LevelInfo), WithDebug(false)).Level())
}

func TestNew_WithJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, WithJSON(), WithLevel(LevelInfo))

	log.Info("hello", "count", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, float64(3), entry["count"])
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.NotPanics(t, func() { log.Error("dropped") })
	assert.False(t, log.Enabled(context.Background(), LevelError))
}

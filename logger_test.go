package pipelines

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFmtLoggerFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFmtLogger(&buf).WithLevel("warn")

	scoped := logger.WithFields(map[string]any{"target": "ci.yml", "code": "X"})
	scoped.Info("hidden")
	scoped.Warn("found %d issues", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  found 2 issues code=X target=ci.yml")
}

func TestFmtLoggerCopiesOnWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewFmtLogger(&buf)
	_ = base.WithFields(map[string]any{"a": 1})
	base.WithContext(context.Background()).Info("plain")

	assert.NotContains(t, buf.String(), "a=1")
}

func TestJSONLoggerWritesStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := withLoggerFields(NewJSONLogger(&buf, "trace"), map[string]any{"target": "ci.yml"})
	logger.Info("definition %s", StatusCreated)

	out := buf.String()
	assert.Contains(t, out, `"msg":"definition created"`)
	assert.Contains(t, out, `"target":"ci.yml"`)
	assert.NotContains(t, out, "%s")
	assert.NotContains(t, out, "!BADKEY")
}

func TestJSONLoggerHonoursSharedLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "WARN")
	logger.Info("skipped %d", 1)
	logger.Error("failed %d times", 3)

	out := buf.String()
	assert.NotContains(t, out, "skipped")
	assert.Contains(t, out, `"msg":"failed 3 times"`)
}

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel(" Debug ")
	assert.True(t, ok)
	assert.Equal(t, LevelDebug, level)
	assert.Equal(t, "debug", level.String())

	level, ok = ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, LevelInfo, level)

	assert.Equal(t, "unknown", Level(42).String())
	assert.Equal(t, []any{"trace", "debug", "info", "warn", "error"}, configLevels())
}

func TestFmtLoggerKeepsLiteralPercentWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	NewFmtLogger(&buf).Info("100% done")
	assert.Contains(t, buf.String(), "INFO  100% done")
}

func TestWithLoggerFieldsOnNil(t *testing.T) {
	assert.NotNil(t, withLoggerFields(nil, map[string]any{"a": 1}))
	assert.NotNil(t, normalizeLogger(nil))
}

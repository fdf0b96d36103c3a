package pipelines

import (
	"bytes"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakePanicHandler(t *testing.T) {
	var gotName string
	var gotFields map[string]any
	handler := MakePanicHandler(func(funcName string, _ any, stack []byte, fields ...map[string]any) {
		gotName = funcName
		gotFields = fields[0]
		assert.NotEmpty(t, stack)
	})

	run := func() (err error) {
		defer handler(&err, "build", map[string]any{"target": "ci.yml"})
		panic("boom")
	}

	err := run()
	require.Error(t, err)
	assert.Equal(t, "build", gotName)
	assert.Equal(t, "ci.yml", gotFields["target"])

	var ge *errors.Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, ErrCodeDefinitionPanic, ge.TextCode)
	assert.Equal(t, "build", ge.Metadata["function"])
	require.NotNil(t, ge.Source)
	assert.Contains(t, ge.Source.Error(), "boom")
}

func TestPanicHandlerWithoutPanic(t *testing.T) {
	called := false
	handler := MakePanicHandler(func(string, any, []byte, ...map[string]any) { called = true })

	run := func() (err error) {
		defer handler(&err, "build")
		return nil
	}

	assert.NoError(t, run())
	assert.False(t, called)
}

func TestLoggerPanicLogger(t *testing.T) {
	var buf bytes.Buffer
	LoggerPanicLogger(NewFmtLogger(&buf))("Document", "boom", []byte("main.go:10"), map[string]any{"target": "ci.yml"})

	out := buf.String()
	assert.Contains(t, out, "recovered from panic in Document: boom")
	assert.Contains(t, out, "target: ci.yml")
	assert.Contains(t, out, "main.go:10")
}

func TestCleanStackTrace(t *testing.T) {
	stack := []byte("goroutine 1\nruntime/debug.Stack()\npanic({0x1})\n\t/go/src/runtime/panic.go:770\nmain.build()\n\t/app/main.go:12")
	assert.Equal(t, "main.build()\n\t/app/main.go:12", string(cleanStackTrace(stack)))
}

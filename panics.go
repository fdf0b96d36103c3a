package pipelines

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/goliatone/go-errors"
)

type PanicLogger func(funcName string, err any, stack []byte, fields ...map[string]any)

// MakePanicHandler returns a function meant to be deferred. It recovers a
// panic, reports it through logger and stores a DEFINITION_PANIC error in
// errp. Errors raised by construction helpers are kept as the error source.
func MakePanicHandler(logger PanicLogger) func(errp *error, funcName string, fields ...map[string]any) {
	return func(errp *error, funcName string, fields ...map[string]any) {
		r := recover()
		if r == nil {
			return
		}
		fullStack := make([]byte, 8096)
		n := runtime.Stack(fullStack, false)
		cleanedStack := cleanStackTrace(fullStack[:n])

		if logger != nil {
			logger(funcName, r, cleanedStack, fields...)
		}
		if errp != nil {
			*errp = panicError(funcName, r)
		}
	}
}

func panicError(funcName string, r any) *errors.Error {
	err := cloneError(ErrDefinitionPanic, "", map[string]any{"function": funcName})
	if cause, ok := r.(error); ok {
		err.Source = cause
		var ge *errors.Error
		if errors.As(cause, &ge) {
			err = err.WithMetadata(map[string]any{"cause_code": ge.TextCode})
		}
		return err
	}
	err.Source = errors.New(fmt.Sprint(r), errors.CategoryInternal)
	return err
}

// LoggerPanicLogger reports panics through logger at error level.
func LoggerPanicLogger(logger Logger) PanicLogger {
	logger = normalizeLogger(logger)
	return func(funcName string, err any, stack []byte, fields ...map[string]any) {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("recovered from panic in %s: %v (%T)\n", funcName, err, err))

		if len(fields) > 0 && fields[0] != nil {
			sb.WriteString("Context:\n")

			// sort keys for consistent output
			keys := make([]string, 0, len(fields[0]))
			for k := range fields[0] {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				sb.WriteString(fmt.Sprintf("  %s: %v\n", k, fields[0][k]))
			}
		}

		sb.WriteString("Stack Trace:\n")
		sb.Write(stack)

		logger.Error("%s", sb.String())
	}
}

func cleanStackTrace(stack []byte) []byte {
	lines := strings.Split(string(stack), "\n")

	// we find the index after the panic line
	panicLineIndex := -1
	for i, line := range lines {
		if strings.Contains(line, "panic(") {
			panicLineIndex = i
			break
		}
	}

	// then remove everything before it
	if panicLineIndex >= 0 && panicLineIndex+2 < len(lines) {
		// remove the panic() call line & file reference line
		lines = lines[panicLineIndex+2:]
	}

	return []byte(strings.Join(lines, "\n"))
}

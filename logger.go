package pipelines

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-logger/glog"
)

// Logger is the printf-style logging contract used by the publisher and the
// CLI. Structured context goes through FieldsLogger.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

type FieldsLogger interface {
	WithFields(map[string]any) Logger
}

// Level orders log severities for every Logger in this package.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"trace", "debug", "info", "warn", "error", "fatal"}

func (l Level) String() string {
	if l < LevelTrace || l > LevelFatal {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLevel accepts the level names case-insensitively. Unknown names fall
// back to info and report false.
func ParseLevel(name string) (Level, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range levelNames {
		if candidate == name {
			return Level(i), true
		}
	}
	return LevelInfo, false
}

// configLevels lists the levels a configuration may select.
func configLevels() []any {
	out := make([]any, 0, int(LevelError)+1)
	for l := LevelTrace; l <= LevelError; l++ {
		out = append(out, l.String())
	}
	return out
}

// formatMessage applies printf arguments once so every backend receives a
// final message.
func formatMessage(msg string, args []any) string {
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// FmtLogger writes text lines and is the fallback when nothing else is
// configured.
type FmtLogger struct {
	out    io.Writer
	ctx    context.Context
	fields map[string]any
	min    Level
}

// NewFmtLogger writes to stderr when out is nil.
func NewFmtLogger(out io.Writer) *FmtLogger {
	if out == nil {
		out = os.Stderr
	}
	return &FmtLogger{out: out, ctx: context.Background()}
}

// WithLevel returns a copy that drops messages below level.
func (l *FmtLogger) WithLevel(level string) *FmtLogger {
	cp := *l
	cp.min, _ = ParseLevel(level)
	return &cp
}

func (l *FmtLogger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args) }
func (l *FmtLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }
func (l *FmtLogger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args) }
func (l *FmtLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args) }
func (l *FmtLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }
func (l *FmtLogger) Fatal(msg string, args ...any) { l.log(LevelFatal, msg, args) }

func (l *FmtLogger) WithContext(ctx context.Context) Logger {
	if l == nil {
		return NewFmtLogger(nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cp := *l
	cp.ctx = ctx
	return &cp
}

func (l *FmtLogger) WithFields(fields map[string]any) Logger {
	if l == nil {
		return NewFmtLogger(nil)
	}
	cp := *l
	cp.fields = mergeFields(l.fields, fields)
	return &cp
}

func (l *FmtLogger) log(level Level, msg string, args []any) {
	if l == nil {
		l = NewFmtLogger(nil)
	}
	if level < l.min {
		return
	}
	line := fmt.Sprintf("%s %-5s %s", time.Now().UTC().Format(time.RFC3339Nano),
		strings.ToUpper(level.String()), formatMessage(msg, args))
	if fields := formatFields(l.fields); fields != "" {
		line += " " + fields
	}
	fmt.Fprintln(l.out, line)
}

// GlogLogger adapts a go-logger logger. Messages are formatted before they
// reach go-logger, whose variadic arguments are attributes, not printf args.
type GlogLogger struct {
	logger glog.Logger
}

func NewGlogLogger(logger glog.Logger) *GlogLogger {
	return &GlogLogger{logger: logger}
}

// NewJSONLogger builds a go-logger JSON logger writing to out at level.
func NewJSONLogger(out io.Writer, level string) *GlogLogger {
	parsed, _ := ParseLevel(level)
	return NewGlogLogger(glog.NewLogger(
		glog.WithWriter(out),
		glog.WithLoggerTypeJSON(),
		glog.WithLevel(parsed.String()),
	))
}

func (l *GlogLogger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args) }
func (l *GlogLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }
func (l *GlogLogger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args) }
func (l *GlogLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args) }
func (l *GlogLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }
func (l *GlogLogger) Fatal(msg string, args ...any) { l.log(LevelFatal, msg, args) }

func (l *GlogLogger) log(level Level, msg string, args []any) {
	if l == nil || l.logger == nil {
		NewFmtLogger(nil).log(level, msg, args)
		return
	}
	text := formatMessage(msg, args)
	switch level {
	case LevelTrace:
		l.logger.Trace(text)
	case LevelDebug:
		l.logger.Debug(text)
	case LevelInfo:
		l.logger.Info(text)
	case LevelWarn:
		l.logger.Warn(text)
	case LevelError:
		l.logger.Error(text)
	default:
		l.logger.Fatal(text)
	}
}

func (l *GlogLogger) WithContext(ctx context.Context) Logger {
	if l == nil || l.logger == nil {
		return NewFmtLogger(nil).WithContext(ctx)
	}
	return &GlogLogger{logger: l.logger.WithContext(ctx)}
}

func (l *GlogLogger) WithFields(fields map[string]any) Logger {
	if l == nil || l.logger == nil {
		return NewFmtLogger(nil).WithFields(fields)
	}
	if fl, ok := l.logger.(glog.FieldsLogger); ok {
		return &GlogLogger{logger: fl.WithFields(fields)}
	}
	return l
}

func normalizeLogger(logger Logger) Logger {
	if logger == nil {
		return NewFmtLogger(nil)
	}
	return logger
}

func withLoggerFields(logger Logger, fields map[string]any) Logger {
	if fl, ok := normalizeLogger(logger).(FieldsLogger); ok {
		return fl.WithFields(fields)
	}
	return logger
}

func mergeFields(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// formatFields renders fields as sorted key=value pairs.
func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}

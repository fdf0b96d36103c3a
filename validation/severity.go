package validation

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Severity ranks a finding. Off disables a check entirely.
type Severity int

const (
	Off Severity = iota
	Trace
	Information
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Off:
		return "off"
	case Trace:
		return "trace"
	case Information:
		return "information"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity accepts the level names case-insensitively, plus the short
// forms info and warn.
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "off", "none":
		return Off, nil
	case "trace":
		return Trace, nil
	case "information", "info":
		return Information, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Off, errors.New("unknown validation severity", errors.CategoryBadInput).
		WithTextCode("INVALID_SEVERITY").
		WithMetadata(map[string]any{"value": value})
}

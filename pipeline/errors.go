package pipeline

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const ErrCodeInvalidArgument = "INVALID_ARGUMENT"

// ErrInvalidArgument is returned by constructors when a required argument is
// missing or malformed. The offending argument is stored under the
// "argument" metadata key.
var ErrInvalidArgument = errors.New("invalid argument", errors.CategoryBadInput).
	WithTextCode(ErrCodeInvalidArgument)

func invalidArgument(argument, message string) *errors.Error {
	err := ErrInvalidArgument.Clone()
	err.Message = message
	return err.WithMetadata(map[string]any{"argument": argument})
}

func requireText(argument, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalidArgument(argument, argument+" must not be empty")
	}
	return nil
}

// Must panics when err is set. It lets fallible constructors sit inside
// fluent chains, like template.Must.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

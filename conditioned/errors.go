package conditioned

import (
	"github.com/goliatone/go-errors"
)

const (
	ErrCodeInvalidOperation = "INVALID_OPERATION"
	ErrCodeEndIfTopLevel    = "ENDIF_TOP_LEVEL"
)

var (
	// ErrInvalidOperation marks a malformed fluent chain. It is raised with panic
	// at construction time so the stack points at the offending call.
	ErrInvalidOperation = errors.New("invalid operation on conditioned definition", errors.CategoryBadInput).
				WithTextCode(ErrCodeInvalidOperation)
	ErrEndIfTopLevel = errors.New("EndIf called on a top-level statement", errors.CategoryBadInput).
				WithTextCode(ErrCodeEndIfTopLevel)
)

func invalidOperation(message string, kind Kind) *errors.Error {
	err := ErrInvalidOperation.Clone()
	err.Message = message
	return err.WithMetadata(map[string]any{"kind": kind.String()})
}

// Recover converts a construction panic raised by this package back into an
// error. Other panics are re-raised.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(*errors.Error); ok {
		switch err.TextCode {
		case ErrCodeInvalidOperation, ErrCodeEndIfTopLevel:
			*errp = err
			return
		}
	}
	panic(r)
}

package pipelines

import (
	"github.com/goliatone/go-errors"
)

const (
	ErrCodeDefinitionPanic   = "DEFINITION_PANIC"
	ErrCodeConfigInvalid     = "CONFIG_INVALID"
	ErrCodeOutdatedYAML      = "OUTDATED_YAML"
	ErrCodeNilDefinition     = "NIL_DEFINITION"
	ErrCodeDuplicateTarget   = "DUPLICATE_TARGET"
	ErrCodeSerializeFailed   = "SERIALIZE_FAILED"
	ErrCodeWriteFailed       = "WRITE_FAILED"
	ErrCodeDefinitionMissing = "DEFINITION_NOT_FOUND"
	ErrCodeInvalidArguments  = "INVALID_ARGUMENTS"
)

var (
	// ErrDefinitionPanic wraps a panic raised while a definition built its
	// document, typically a malformed conditional chain.
	ErrDefinitionPanic = errors.New("definition panicked while building its document", errors.CategoryInternal).
				WithTextCode(ErrCodeDefinitionPanic)
	ErrConfigInvalid = errors.New("invalid configuration", errors.CategoryValidation).
				WithTextCode(ErrCodeConfigInvalid)
	// ErrOutdatedYAML is returned in fail-if-changed mode when a published
	// file does not match its definition.
	ErrOutdatedYAML = errors.New("published YAML is out of date", errors.CategoryConflict).
				WithTextCode(ErrCodeOutdatedYAML)
	ErrDefinitionMissing = errors.New("definition not found", errors.CategoryNotFound).
				WithTextCode(ErrCodeDefinitionMissing)
)

func cloneError(base *errors.Error, message string, metadata map[string]any) *errors.Error {
	err := base.Clone()
	if message != "" {
		err.Message = message
	}
	if len(metadata) > 0 {
		err = err.WithMetadata(metadata)
	}
	return err
}

// errorCode returns the text code of err, or "" for foreign errors.
func errorCode(err error) string {
	var ge *errors.Error
	if errors.As(err, &ge) {
		return ge.TextCode
	}
	return ""
}

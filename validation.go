package pipelines

import (
	"fmt"

	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-pipelines/validation"
)

// ErrValidation marks a definition rejected by an Error finding. Raised
// copies keep the VALIDATION_FAILED text code and the validation category.
var ErrValidation = errors.New("validation error", errors.CategoryValidation).
	WithTextCode("VALIDATION_FAILED")

func validationError(target string, findings []validation.Finding) error {
	var errs error
	for _, f := range findings {
		if f.Severity < validation.Error {
			continue
		}
		errs = errors.Join(errs, errors.New(fmt.Sprintf("%s: %s", f.Path, f.Message), errors.CategoryValidation).
			WithTextCode(f.Code))
	}
	err := ErrValidation.Clone().WithMetadata(map[string]any{
		"target":   target,
		"findings": len(findings),
	})
	err.Source = errs
	return err
}

// logFindings reports each finding at the log level matching its severity.
func logFindings(logger Logger, findings []validation.Finding) {
	for _, f := range findings {
		l := withLoggerFields(logger, map[string]any{"code": f.Code, "path": f.Path})
		switch f.Severity {
		case validation.Trace:
			l.Trace(f.Message)
		case validation.Information:
			l.Info(f.Message)
		case validation.Warning:
			l.Warn(f.Message)
		case validation.Error:
			l.Error(f.Message)
		}
	}
}

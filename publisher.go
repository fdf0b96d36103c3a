package pipelines

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-pipelines/emit"
	"github.com/goliatone/go-pipelines/validation"
)

type Status int

const (
	StatusUnchanged Status = iota
	StatusUpdated
	StatusCreated
	StatusFailed
	// StatusValidated is reported by Validate, which never writes.
	StatusValidated
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusUpdated:
		return "updated"
	case StatusCreated:
		return "created"
	case StatusFailed:
		return "failed"
	case StatusValidated:
		return "validated"
	}
	return "unknown"
}

// Result is the outcome of publishing a single definition.
type Result struct {
	Target   string
	Path     string
	Status   Status
	Findings []validation.Finding
	Err      error
}

// Publisher builds, validates, serializes and writes definitions.
type Publisher struct {
	config        Config
	logger        Logger
	failIfChanged bool
	recoverPanic  func(errp *error, funcName string, fields ...map[string]any)
}

type PublisherOption func(*Publisher)

func WithLogger(logger Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithFailIfChanged turns publishing into a check: files are never written
// and any difference fails with OUTDATED_YAML.
func WithFailIfChanged(enabled bool) PublisherOption {
	return func(p *Publisher) {
		p.failIfChanged = enabled
	}
}

func WithPanicLogger(logger PanicLogger) PublisherOption {
	return func(p *Publisher) {
		p.recoverPanic = MakePanicHandler(logger)
	}
}

func NewPublisher(cfg Config, opts ...PublisherOption) *Publisher {
	p := &Publisher{config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	p.logger = normalizeLogger(p.logger)
	if p.recoverPanic == nil {
		p.recoverPanic = MakePanicHandler(LoggerPanicLogger(p.logger))
	}
	return p
}

// Publish processes every definition and returns one result each. The error
// joins the failures of all definitions.
func (p *Publisher) Publish(ctx context.Context, defs ...Definition) ([]Result, error) {
	return p.run(ctx, defs, false)
}

// Validate builds, validates and serializes definitions without touching
// the output directory.
func (p *Publisher) Validate(ctx context.Context, defs ...Definition) ([]Result, error) {
	return p.run(ctx, defs, true)
}

func (p *Publisher) run(ctx context.Context, defs []Definition, dryRun bool) ([]Result, error) {
	logger := p.logger.WithContext(ctx)
	results := make([]Result, 0, len(defs))
	var errs error

	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return results, errors.Join(errs, errors.Wrap(err, errors.CategoryExternal, "publishing canceled"))
		}
		res := p.publishOne(logger, def, dryRun)
		if res.Err != nil {
			errs = errors.Join(errs, res.Err)
		}
		results = append(results, res)
	}
	return results, errs
}

func (p *Publisher) publishOne(logger Logger, def Definition, dryRun bool) Result {
	if def == nil {
		return Result{Status: StatusFailed, Err: errNilDefinition()}
	}
	target := normalizeTarget(def.TargetFile())
	res := Result{Target: target, Path: filepath.Join(p.config.OutputDir, filepath.FromSlash(target))}
	logger = withLoggerFields(logger, map[string]any{"target": target})

	content, findings, err := p.render(logger, def, target)
	res.Findings = findings
	if err != nil {
		logger.Error("definition failed: %v", err)
		res.Status = StatusFailed
		res.Err = err
		return res
	}
	if dryRun {
		logger.Debug("definition is valid")
		res.Status = StatusValidated
		return res
	}

	status, err := p.write(res.Path, content)
	res.Status = status
	res.Err = err
	if err != nil {
		logger.Error("definition not published: %v", err)
		return res
	}
	logger.Info("definition %s", status)
	return res
}

// Render returns the YAML a definition publishes, including header, and its
// validation findings.
func (p *Publisher) Render(def Definition) ([]byte, []validation.Finding, error) {
	if def == nil {
		return nil, nil, errNilDefinition()
	}
	target := normalizeTarget(def.TargetFile())
	return p.render(withLoggerFields(p.logger, map[string]any{"target": target}), def, target)
}

func (p *Publisher) render(logger Logger, def Definition, target string) ([]byte, []validation.Finding, error) {
	doc, err := p.build(def, target)
	if err != nil {
		return nil, nil, err
	}

	findings := validation.Run(doc, p.config.Validations)
	logFindings(logger, findings)
	if validation.HasErrors(findings) {
		return nil, findings, validationError(target, findings)
	}

	body, err := emit.Marshal(doc)
	if err != nil {
		return nil, findings, errors.Wrap(err, errors.CategoryInternal, "serialize definition").
			WithTextCode(ErrCodeSerializeFailed).
			WithMetadata(map[string]any{"target": target})
	}
	if p.config.Serialization.Prettify {
		body = prettify(body)
	}
	return withHeader(p.config.Serialization.HeaderLines(target), body), findings, nil
}

func (p *Publisher) build(def Definition, target string) (doc any, err error) {
	defer p.recoverPanic(&err, "Document", map[string]any{"target": target})
	return def.Document()
}

func (p *Publisher) write(path string, content []byte) (Status, error) {
	existing, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return StatusFailed, writeError(err, "read published file", path)
	}
	if exists && bytes.Equal(existing, content) {
		return StatusUnchanged, nil
	}
	if p.failIfChanged {
		return StatusFailed, cloneError(ErrOutdatedYAML, "", map[string]any{"path": path, "exists": exists})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return StatusFailed, writeError(err, "create output directory", path)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return StatusFailed, writeError(err, "write published file", path)
	}
	if exists {
		return StatusUpdated, nil
	}
	return StatusCreated, nil
}

func writeError(err error, message, path string) error {
	return errors.Wrap(err, errors.CategoryExternal, message).
		WithTextCode(ErrCodeWriteFailed).
		WithMetadata(map[string]any{"path": path})
}

func withHeader(lines []string, body []byte) []byte {
	if len(lines) == 0 {
		return body
	}
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString("### ")
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes()
}

// prettify puts a blank line between top-level mapping keys. Nested content
// is always indented so column zero only holds keys.
func prettify(body []byte) []byte {
	lines := strings.SplitAfter(string(body), "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 && isTopLevelKey(line) {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return []byte(b.String())
}

func isTopLevelKey(line string) bool {
	if line == "" {
		return false
	}
	switch line[0] {
	case ' ', '-', '#', '\n':
		return false
	}
	return true
}

func errNilDefinition() error {
	return errors.New("definition cannot be nil", errors.CategoryBadInput).WithTextCode(ErrCodeNilDefinition)
}

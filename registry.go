package pipelines

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-errors"
)

// Definition produces one YAML document published at TargetFile, relative
// to the configured output directory.
type Definition interface {
	TargetFile() string
	Document() (any, error)
}

// DefinitionFunc adapts a builder function to Definition.
type DefinitionFunc struct {
	Target string
	Build  func() (any, error)
}

func (d DefinitionFunc) TargetFile() string {
	return d.Target
}

func (d DefinitionFunc) Document() (any, error) {
	if d.Build == nil {
		return nil, cloneError(ErrDefinitionMissing, "definition has no builder", map[string]any{"target": d.Target})
	}
	return d.Build()
}

// Static wraps a document that is already built.
func Static(target string, doc any) Definition {
	return DefinitionFunc{Target: target, Build: func() (any, error) { return doc, nil }}
}

// Registry collects definitions keyed by target file.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{definitions: make(map[string]Definition)}
}

func (r *Registry) Register(defs ...Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs error
	for _, def := range defs {
		if def == nil {
			errs = errors.Join(errs, errors.New("definition cannot be nil", errors.CategoryBadInput).
				WithTextCode(ErrCodeNilDefinition))
			continue
		}
		target := normalizeTarget(def.TargetFile())
		if target == "" {
			errs = errors.Join(errs, errors.New("definition target file cannot be empty", errors.CategoryBadInput).
				WithTextCode(ErrCodeNilDefinition))
			continue
		}
		if _, exists := r.definitions[target]; exists {
			errs = errors.Join(errs, errors.New("definition already registered for target", errors.CategoryConflict).
				WithTextCode(ErrCodeDuplicateTarget).
				WithMetadata(map[string]any{"target": target}))
			continue
		}
		r.definitions[target] = def
	}
	return errs
}

// MustRegister panics when registration fails.
func (r *Registry) MustRegister(defs ...Definition) *Registry {
	if err := r.Register(defs...); err != nil {
		panic(err)
	}
	return r
}

// Definitions returns the registered definitions ordered by target.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := r.targetsLocked()
	out := make([]Definition, 0, len(targets))
	for _, target := range targets {
		out = append(out, r.definitions[target])
	}
	return out
}

func (r *Registry) Targets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.targetsLocked()
}

// Lookup selects definitions by target. An empty selection returns all of
// them.
func (r *Registry) Lookup(targets ...string) ([]Definition, error) {
	if len(targets) == 0 {
		return r.Definitions(), nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Definition, 0, len(targets))
	for _, target := range targets {
		def, ok := r.definitions[normalizeTarget(target)]
		if !ok {
			return nil, cloneError(ErrDefinitionMissing, "", map[string]any{"target": target})
		}
		out = append(out, def)
	}
	return out, nil
}

func (r *Registry) targetsLocked() []string {
	targets := make([]string, 0, len(r.definitions))
	for target := range r.definitions {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}

func normalizeTarget(target string) string {
	target = strings.TrimSpace(strings.ReplaceAll(target, "\\", "/"))
	return strings.TrimPrefix(target, "./")
}

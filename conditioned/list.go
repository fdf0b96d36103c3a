package conditioned

import (
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pipelines/emit"
)

// InsertTopLevel adds the top-most ancestor of node to items unless it is
// already present. Chains built from any inner node collapse onto one root.
func InsertTopLevel[T any](items []*Definition[T], node *Definition[T]) []*Definition[T] {
	if node == nil {
		return items
	}
	top := node.Root()
	for _, existing := range items {
		if existing == top {
			return items
		}
	}
	return append(items, top)
}

// List is an ordered collection of top-level definitions, used for pipeline
// sections such as stages, jobs, steps and variables.
type List[T any] struct {
	items []*Definition[T]
}

// NewList builds a list from definitions, see Add.
func NewList[T any](defs ...*Definition[T]) List[T] {
	var l List[T]
	l.Add(defs...)
	return l
}

// ListOf builds a list of plain values.
func ListOf[T any](values ...T) List[T] {
	var l List[T]
	l.Append(values...)
	return l
}

// Add appends the root of each definition once.
func (l *List[T]) Add(defs ...*Definition[T]) *List[T] {
	for _, d := range defs {
		l.items = InsertTopLevel(l.items, d)
	}
	return l
}

// AddCondition attaches pending conditions with no content and adds them.
func (l *List[T]) AddCondition(conds ...*Condition[T]) *List[T] {
	for _, c := range conds {
		l.Add(c.materialize())
	}
	return l
}

// Append adds plain values under a fresh root.
func (l *List[T]) Append(values ...T) *List[T] {
	if len(values) == 0 {
		return l
	}
	l.items = append(l.items, Plain(values...))
	return l
}

// Items returns the top-level roots.
func (l List[T]) Items() []*Definition[T] {
	out := make([]*Definition[T], len(l.items))
	copy(out, l.items)
	return out
}

// Len counts the emitted entries, with conditional blocks counting once.
func (l List[T]) Len() int {
	n := 0
	for _, item := range l.items {
		n += len(item.children)
	}
	return n
}

func (l List[T]) IsZero() bool {
	return l.Len() == 0
}

// Flatten returns every value reachable from the list, see Flatten.
func (l List[T]) Flatten() []T {
	return Flatten(l.items...)
}

func (l List[T]) MarshalYAML() (any, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, item := range l.items {
		if err := item.appendItems(seq); err != nil {
			return nil, err
		}
	}
	return seq, nil
}

func (l *List[T]) UnmarshalYAML(*yaml.Node) error {
	return emit.ErrReadNotSupported.Clone()
}

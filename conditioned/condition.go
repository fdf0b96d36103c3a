package conditioned

import (
	"strings"

	"github.com/goliatone/go-pipelines/expr"
)

// Condition is a pending if/elseif/each block. Nothing is attached to the tree
// until a value, template or nested block is added to it.
type Condition[T any] struct {
	kind     Kind
	operands []string
	parent   *Definition[T]
	anchor   *Definition[T]
	node     *Definition[T]
}

// If opens a top-level condition.
func If[T any]() *IfBuilder[T] {
	return &IfBuilder[T]{kind: KindIf}
}

// Each opens a top-level `each` loop.
func Each[T any](iterator, collection string) *Condition[T] {
	return link[T](nil, nil, KindEach, eachClause(iterator, collection))
}

func (c *Condition[T]) Kind() Kind {
	return c.kind
}

// Parent returns the node the block will attach to. It is nil for top-level
// conditions, which get their own root on materialization.
func (c *Condition[T]) Parent() *Definition[T] {
	return c.parent
}

// String renders the condition text. Merged conditions render as a flat and().
func (c *Condition[T]) String() string {
	if len(c.operands) == 1 {
		return c.operands[0]
	}
	return "and(" + strings.Join(c.operands, ", ") + ")"
}

// Append materializes the block and adds values to it.
func (c *Condition[T]) Append(values ...T) *Definition[T] {
	return c.materialize().Append(values...)
}

// Template materializes the block and adds a template reference to it.
func (c *Condition[T]) Template(path string, params ...Parameter) *Definition[T] {
	return c.materialize().Template(path, params...)
}

// If chains another condition. A pending if/elseif merges with it into a
// single and(); anything else nests.
func (c *Condition[T]) If() *IfBuilder[T] {
	return &IfBuilder[T]{parent: c.parent, pending: c, kind: KindIf}
}

// Each nests a loop inside this block.
func (c *Condition[T]) Each(iterator, collection string) *Condition[T] {
	return link(c.parent, c, KindEach, eachClause(iterator, collection))
}

// Else attaches the block with no content and returns its else branch.
func (c *Condition[T]) Else() *Definition[T] {
	return c.materialize().Else()
}

// ElseIf attaches the block with no content and opens an elseif after it.
func (c *Condition[T]) ElseIf() *IfBuilder[T] {
	return c.materialize().ElseIf()
}

// EndIf attaches the block with no content and returns its parent. It
// panics for top-level conditions.
func (c *Condition[T]) EndIf() *Definition[T] {
	return c.materialize().EndIf()
}

// materialize attaches the block once; later calls return the same node.
func (c *Condition[T]) materialize() *Definition[T] {
	if c.node != nil {
		return c.node
	}
	parent := c.parent
	if parent == nil {
		parent = newRoot[T]()
		parent.implicit = true
	}
	node := &Definition[T]{kind: c.kind, condition: c.String()}
	if c.kind == KindElseIf && c.anchor != nil {
		parent.insertChild(parent.chainEnd(c.anchor), node)
	} else {
		parent.addChild(node)
	}
	c.parent = parent
	c.node = node
	return node
}

func (c *Condition[T]) merge(text string) *Condition[T] {
	ops := make([]string, 0, len(c.operands)+1)
	ops = append(ops, c.operands...)
	ops = append(ops, text)
	return &Condition[T]{kind: c.kind, operands: ops, parent: c.parent, anchor: c.anchor}
}

type attachment int

const (
	attachNew attachment = iota
	attachMerge
	attachNest
)

// decide picks how a block of kind next relates to the pending condition it
// is chained after.
func decide[T any](pending *Condition[T], next Kind) attachment {
	switch {
	case pending == nil:
		return attachNew
	case pending.node == nil && next == KindIf && (pending.kind == KindIf || pending.kind == KindElseIf):
		return attachMerge
	default:
		return attachNest
	}
}

func link[T any](parent *Definition[T], pending *Condition[T], kind Kind, text string) *Condition[T] {
	switch decide(pending, kind) {
	case attachMerge:
		return pending.merge(text)
	case attachNest:
		return &Condition[T]{kind: kind, operands: []string{text}, parent: pending.materialize()}
	}
	return &Condition[T]{kind: kind, operands: []string{text}, parent: parent}
}

// IfBuilder collects the predicate of an if/elseif block. It has no side
// effects until one of its methods returns a Condition.
type IfBuilder[T any] struct {
	kind    Kind
	parent  *Definition[T]
	anchor  *Definition[T]
	pending *Condition[T]
}

// Condition uses a prebuilt predicate.
func (b *IfBuilder[T]) Condition(c expr.Condition) *Condition[T] {
	return b.Expression(c.String())
}

// Expression uses raw predicate text.
func (b *IfBuilder[T]) Expression(text string) *Condition[T] {
	if b.pending != nil {
		return link(b.parent, b.pending, b.kind, text)
	}
	cond := link(b.parent, nil, b.kind, text)
	cond.anchor = b.anchor
	return cond
}

func (b *IfBuilder[T]) Equal(a, c string) *Condition[T] {
	return b.Condition(expr.Equal(a, c))
}

func (b *IfBuilder[T]) NotEqual(a, c string) *Condition[T] {
	return b.Condition(expr.NotEqual(a, c))
}

func (b *IfBuilder[T]) And(first, second expr.Condition, rest ...expr.Condition) *Condition[T] {
	return b.Condition(expr.And(first, second, rest...))
}

func (b *IfBuilder[T]) Or(first, second expr.Condition, rest ...expr.Condition) *Condition[T] {
	return b.Condition(expr.Or(first, second, rest...))
}

func (b *IfBuilder[T]) Xor(first, second expr.Condition) *Condition[T] {
	return b.Condition(expr.Xor(first, second))
}

func (b *IfBuilder[T]) Not(c expr.Condition) *Condition[T] {
	return b.Condition(expr.Not(c))
}

func (b *IfBuilder[T]) In(value string, candidates ...string) *Condition[T] {
	return b.Condition(expr.In(value, candidates...))
}

func (b *IfBuilder[T]) NotIn(value string, candidates ...string) *Condition[T] {
	return b.Condition(expr.NotIn(value, candidates...))
}

func (b *IfBuilder[T]) Contains(haystack, needle string) *Condition[T] {
	return b.Condition(expr.Contains(haystack, needle))
}

func (b *IfBuilder[T]) StartsWith(value, prefix string) *Condition[T] {
	return b.Condition(expr.StartsWith(value, prefix))
}

func (b *IfBuilder[T]) EndsWith(value, suffix string) *Condition[T] {
	return b.Condition(expr.EndsWith(value, suffix))
}

func (b *IfBuilder[T]) ContainsValue(collection, value string) *Condition[T] {
	return b.Condition(expr.ContainsValue(collection, value))
}

func (b *IfBuilder[T]) Greater(a, c string) *Condition[T] {
	return b.Condition(expr.Greater(a, c))
}

func (b *IfBuilder[T]) GreaterOrEqual(a, c string) *Condition[T] {
	return b.Condition(expr.GreaterOrEqual(a, c))
}

func (b *IfBuilder[T]) Less(a, c string) *Condition[T] {
	return b.Condition(expr.Less(a, c))
}

func (b *IfBuilder[T]) LessOrEqual(a, c string) *Condition[T] {
	return b.Condition(expr.LessOrEqual(a, c))
}

// IsBranch tests Build.SourceBranch against refs/heads/<name>.
func (b *IfBuilder[T]) IsBranch(name string) *Condition[T] {
	return b.Condition(expr.IsBranch(name))
}

func (b *IfBuilder[T]) IsNotBranch(name string) *Condition[T] {
	return b.Condition(expr.IsNotBranch(name))
}

func (b *IfBuilder[T]) IsPullRequest() *Condition[T] {
	return b.Condition(expr.IsPullRequest())
}

func (b *IfBuilder[T]) IsNotPullRequest() *Condition[T] {
	return b.Condition(expr.IsNotPullRequest())
}

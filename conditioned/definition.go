package conditioned

// Kind identifies what a Definition node represents.
type Kind int

const (
	// KindRoot is the unconditioned top of a tree; its children are emitted inline.
	KindRoot Kind = iota
	KindIf
	KindElseIf
	KindElse
	KindEach
	KindValue
	KindTemplate
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindIf:
		return "if"
	case KindElseIf:
		return "elseif"
	case KindElse:
		return "else"
	case KindEach:
		return "each"
	case KindValue:
		return "value"
	case KindTemplate:
		return "template"
	}
	return "unknown"
}

// Definition is a node of a conditioned tree. Block nodes own an insertion
// ordered list of children (values, template references and nested blocks);
// every child points back to the node that lists it.
type Definition[T any] struct {
	kind      Kind
	condition string
	value     T
	template  *TemplateReference
	children  []*Definition[T]
	parent    *Definition[T]
	// implicit roots hold a top-level chain and are not reachable with EndIf.
	implicit bool
}

// Plain returns an unconditioned root holding values.
func Plain[T any](values ...T) *Definition[T] {
	return newRoot[T]().Append(values...)
}

// Template returns an unconditioned root holding a template reference.
func Template[T any](path string, params ...Parameter) *Definition[T] {
	return newRoot[T]().Template(path, params...)
}

func newRoot[T any]() *Definition[T] {
	return &Definition[T]{kind: KindRoot}
}

func (d *Definition[T]) Kind() Kind {
	return d.kind
}

// Condition returns the rendered expression of an if/elseif block, or the
// "x in y" clause of an each block.
func (d *Definition[T]) Condition() string {
	return d.condition
}

// Parent returns the node this one is attached to, nil for roots.
func (d *Definition[T]) Parent() *Definition[T] {
	return d.parent
}

// Root walks parent pointers to the top-most ancestor.
func (d *Definition[T]) Root() *Definition[T] {
	top := d
	for top.parent != nil {
		top = top.parent
	}
	return top
}

// Children returns a copy of the node's ordered children.
func (d *Definition[T]) Children() []*Definition[T] {
	out := make([]*Definition[T], len(d.children))
	copy(out, d.children)
	return out
}

// Value returns the leaf value of a KindValue node.
func (d *Definition[T]) Value() (T, bool) {
	return d.value, d.kind == KindValue
}

// TemplateReference returns the reference held by a KindTemplate node.
func (d *Definition[T]) TemplateReference() (*TemplateReference, bool) {
	return d.template, d.kind == KindTemplate
}

// Append adds values to the block in order and returns the same block.
func (d *Definition[T]) Append(values ...T) *Definition[T] {
	d.requireContainer("Append")
	for _, v := range values {
		d.addChild(&Definition[T]{kind: KindValue, value: v})
	}
	return d
}

// Template appends a template reference to the block and returns the same block.
func (d *Definition[T]) Template(path string, params ...Parameter) *Definition[T] {
	d.requireContainer("Template")
	ref := newTemplateReference(path, params)
	d.addChild(&Definition[T]{kind: KindTemplate, template: ref})
	return d
}

// If opens a condition nested inside this block.
func (d *Definition[T]) If() *IfBuilder[T] {
	d.requireContainer("If")
	return &IfBuilder[T]{parent: d, kind: KindIf}
}

// Each opens an `each` loop nested inside this block.
func (d *Definition[T]) Each(iterator, collection string) *Condition[T] {
	d.requireContainer("Each")
	return link(d, nil, KindEach, eachClause(iterator, collection))
}

// ElseIf opens a sibling elseif branch placed after this if/elseif chain and
// before any else branch.
func (d *Definition[T]) ElseIf() *IfBuilder[T] {
	d.requireBranch("ElseIf")
	return &IfBuilder[T]{parent: d.parent, anchor: d, kind: KindElseIf}
}

// Else returns the else branch of this if/elseif chain, creating it right
// after the chain when it does not exist yet.
func (d *Definition[T]) Else() *Definition[T] {
	d.requireBranch("Else")
	parent := d.parent
	end := parent.chainEnd(d)
	if end < len(parent.children) && parent.children[end].kind == KindElse {
		return parent.children[end]
	}
	node := &Definition[T]{kind: KindElse}
	parent.insertChild(end, node)
	return node
}

// EndIf closes the block and returns its parent. Calling it on a root or on
// a top-level block panics with ErrEndIfTopLevel.
func (d *Definition[T]) EndIf() *Definition[T] {
	if d.parent == nil || d.parent.implicit {
		panic(ErrEndIfTopLevel.Clone().WithMetadata(map[string]any{"kind": d.kind.String()}))
	}
	return d.parent
}

// Flatten returns every value in the subtree, depth first in insertion order.
func (d *Definition[T]) Flatten() []T {
	return Flatten(d)
}

func (d *Definition[T]) addChild(child *Definition[T]) *Definition[T] {
	child.parent = d
	d.children = append(d.children, child)
	return child
}

func (d *Definition[T]) insertChild(at int, child *Definition[T]) {
	child.parent = d
	d.children = append(d.children, nil)
	copy(d.children[at+1:], d.children[at:])
	d.children[at] = child
}

// chainEnd returns the index right after the if/elseif run containing member.
func (d *Definition[T]) chainEnd(member *Definition[T]) int {
	idx := len(d.children)
	for i, child := range d.children {
		if child == member {
			idx = i + 1
			break
		}
	}
	for idx < len(d.children) && d.children[idx].kind == KindElseIf {
		idx++
	}
	return idx
}

func (d *Definition[T]) requireContainer(op string) {
	if d.kind == KindValue || d.kind == KindTemplate {
		panic(invalidOperation(op+" requires a root or block definition", d.kind))
	}
}

func (d *Definition[T]) requireBranch(op string) {
	if d.kind != KindIf && d.kind != KindElseIf {
		panic(invalidOperation(op+" must follow an if or elseif block", d.kind))
	}
	if d.parent == nil {
		panic(invalidOperation(op+" requires an attached if block", d.kind))
	}
}

func eachClause(iterator, collection string) string {
	return iterator + " in " + collection
}

package conditioned

import (
	"github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pipelines/emit"
)

// MarshalYAML emits the node in sequence context: a root becomes a sequence
// of its children, a block becomes a single-key mapping whose value is the
// sequence of its children, and leaves encode as themselves.
func (d *Definition[T]) MarshalYAML() (any, error) {
	return d.node()
}

// UnmarshalYAML always fails: definitions are write-only.
func (d *Definition[T]) UnmarshalYAML(*yaml.Node) error {
	return emit.ErrReadNotSupported.Clone()
}

func (d *Definition[T]) node() (*yaml.Node, error) {
	switch d.kind {
	case KindValue:
		return encodeValue(d.value)
	case KindTemplate:
		return d.template.node()
	case KindRoot:
		return d.sequence()
	}
	seq, err := d.sequence()
	if err != nil {
		return nil, err
	}
	return mappingNode(keyNode(d.key()), seq), nil
}

func (d *Definition[T]) sequence() (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	if err := d.appendItems(seq); err != nil {
		return nil, err
	}
	return seq, nil
}

func (d *Definition[T]) appendItems(seq *yaml.Node) error {
	for _, child := range d.children {
		if child.kind == KindRoot {
			if err := child.appendItems(seq); err != nil {
				return err
			}
			continue
		}
		n, err := child.node()
		if err != nil {
			return err
		}
		seq.Content = append(seq.Content, n)
	}
	return nil
}

// key renders the template expression heading a block.
func (d *Definition[T]) key() string {
	switch d.kind {
	case KindIf:
		return "${{ if " + d.condition + " }}"
	case KindElseIf:
		return "${{ elseif " + d.condition + " }}"
	case KindElse:
		return "${{ else }}"
	case KindEach:
		return "${{ each " + d.condition + " }}"
	}
	return ""
}

// mappingValue emits the node in mapping context, where each block key maps
// directly to its content. A block holding a single scalar maps to it.
func (d *Definition[T]) mappingValue() (*yaml.Node, error) {
	if len(d.children) == 1 && d.children[0].kind == KindValue {
		return encodeValue(d.children[0].value)
	}
	out := mappingNode()
	for _, child := range d.children {
		var (
			n   *yaml.Node
			err error
		)
		switch child.kind {
		case KindValue:
			n, err = encodeValue(child.value)
		case KindTemplate:
			n, err = child.template.node()
		case KindRoot:
			n, err = child.mappingValue()
		default:
			var inner *yaml.Node
			inner, err = child.mappingValue()
			if err == nil {
				n = mappingNode(keyNode(child.key()), inner)
			}
		}
		if err != nil {
			return nil, err
		}
		if n.Kind != yaml.MappingNode {
			return nil, invalidOperation("a conditional value mixes scalars with other content", child.kind)
		}
		out.Content = append(out.Content, n.Content...)
	}
	return out, nil
}

func encodeValue(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		var ge *errors.Error
		if errors.As(err, &ge) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "encode conditioned value").
			WithTextCode(emit.ErrCodeEncodeFailed)
	}
	return &n, nil
}

func keyNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func mappingNode(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: content}
}

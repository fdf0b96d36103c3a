package conditioned

import (
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pipelines/emit"
)

// Value is a field value that is either a literal, a reference resolved by
// Azure Pipelines, or a conditional tree of literals. The zero Value is empty
// and omitted from output.
type Value[T any] struct {
	literal T
	ref     string
	tree    *Definition[T]
	set     bool
}

func Literal[T any](v T) Value[T] {
	return Value[T]{literal: v, set: true}
}

// VariableRef renders the macro $(name).
func VariableRef[T any](name string) Value[T] {
	return Value[T]{ref: "$(" + name + ")", set: true}
}

// ParameterRef renders the template expression ${{ parameters.name }}.
func ParameterRef[T any](name string) Value[T] {
	return Value[T]{ref: "${{ parameters." + name + " }}", set: true}
}

// RuntimeRef renders the runtime expression $[ expression ].
func RuntimeRef[T any](expression string) Value[T] {
	return Value[T]{ref: "$[ " + expression + " ]", set: true}
}

// Conditional uses the tree containing def. Each block key maps directly to
// its value.
func Conditional[T any](def *Definition[T]) Value[T] {
	if def == nil {
		return Value[T]{}
	}
	return Value[T]{tree: def.Root(), set: true}
}

func (v Value[T]) IsZero() bool {
	return !v.set
}

// Get returns the literal, if the value holds one.
func (v Value[T]) Get() (T, bool) {
	return v.literal, v.set && v.ref == "" && v.tree == nil
}

// Reference returns the macro or expression text, if any.
func (v Value[T]) Reference() (string, bool) {
	return v.ref, v.ref != ""
}

// Tree returns the conditional tree, if any.
func (v Value[T]) Tree() (*Definition[T], bool) {
	return v.tree, v.tree != nil
}

func (v Value[T]) MarshalYAML() (any, error) {
	switch {
	case v.tree != nil:
		return v.tree.mappingValue()
	case v.ref != "":
		return v.ref, nil
	}
	return v.literal, nil
}

func (v *Value[T]) UnmarshalYAML(*yaml.Node) error {
	return emit.ErrReadNotSupported.Clone()
}

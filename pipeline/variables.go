package pipeline

import (
	"fmt"

	"github.com/goliatone/go-pipelines/conditioned"
)

// VariableBase is an entry of a variables section: a Variable or a
// VariableGroup.
type VariableBase interface {
	isVariable()
}

// Variables is a conditioned list of variable entries.
type Variables = conditioned.List[VariableBase]

type Variable struct {
	Name     string `yaml:"name"`
	Value    string `yaml:"value"`
	Readonly bool   `yaml:"readonly,omitempty"`
}

func (*Variable) isVariable() {}

// NewVariable builds a variable. Non string values are formatted with fmt.
func NewVariable(name string, value any) (*Variable, error) {
	if err := requireText("name", name); err != nil {
		return nil, err
	}
	return &Variable{Name: name, Value: fmt.Sprint(value)}, nil
}

// Var is NewVariable for fluent chains; it panics on an empty name.
func Var(name string, value any) *Variable {
	return Must(NewVariable(name, value))
}

// ReadonlyVar marks the variable read only at queue time.
func ReadonlyVar(name string, value any) *Variable {
	v := Var(name, value)
	v.Readonly = true
	return v
}

type VariableGroup struct {
	Group string `yaml:"group"`
}

func (*VariableGroup) isVariable() {}

func NewVariableGroup(name string) (*VariableGroup, error) {
	if err := requireText("group", name); err != nil {
		return nil, err
	}
	return &VariableGroup{Group: name}, nil
}

func Group(name string) *VariableGroup {
	return Must(NewVariableGroup(name))
}

// VariablesOf builds an unconditioned variables list.
func VariablesOf(values ...VariableBase) Variables {
	return conditioned.ListOf(values...)
}

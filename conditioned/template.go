package conditioned

import (
	"gopkg.in/yaml.v3"
)

// Parameter is a named template argument. Order of declaration is kept in
// the emitted parameters mapping.
type Parameter struct {
	Name  string
	Value any
}

// Param builds a Parameter.
func Param(name string, value any) Parameter {
	return Parameter{Name: name, Value: value}
}

// TemplateReference points at another YAML file, optionally with parameters.
type TemplateReference struct {
	Path       string
	Parameters []Parameter
}

func newTemplateReference(path string, params []Parameter) *TemplateReference {
	ref := &TemplateReference{Path: path}
	if len(params) > 0 {
		ref.Parameters = append([]Parameter(nil), params...)
	}
	return ref
}

// MarshalYAML renders `template: path` followed by `parameters:` when any
// parameter is set.
func (t TemplateReference) MarshalYAML() (any, error) {
	return t.node()
}

func (t TemplateReference) node() (*yaml.Node, error) {
	out := mappingNode(keyNode("template"), keyNode(t.Path))
	if len(t.Parameters) == 0 {
		return out, nil
	}
	params := mappingNode()
	for _, p := range t.Parameters {
		value, err := encodeValue(p.Value)
		if err != nil {
			return nil, err
		}
		params.Content = append(params.Content, keyNode(p.Name), value)
	}
	out.Content = append(out.Content, keyNode("parameters"), params)
	return out, nil
}

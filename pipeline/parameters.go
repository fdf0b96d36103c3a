package pipeline

type ParameterType string

const (
	ParameterString         ParameterType = "string"
	ParameterNumber         ParameterType = "number"
	ParameterBoolean        ParameterType = "boolean"
	ParameterObject         ParameterType = "object"
	ParameterStep           ParameterType = "step"
	ParameterStepList       ParameterType = "stepList"
	ParameterJob            ParameterType = "job"
	ParameterJobList        ParameterType = "jobList"
	ParameterDeployment     ParameterType = "deployment"
	ParameterDeploymentList ParameterType = "deploymentList"
	ParameterStage          ParameterType = "stage"
	ParameterStageList      ParameterType = "stageList"
)

// Parameter declares a runtime or template parameter.
type Parameter struct {
	Name        string        `yaml:"name"`
	DisplayName string        `yaml:"displayName,omitempty"`
	Type        ParameterType `yaml:"type"`
	Default     any           `yaml:"default,omitempty"`
	Values      []string      `yaml:"values,omitempty"`
}

func NewParameter(name string, typ ParameterType, def any) (*Parameter, error) {
	if err := requireText("name", name); err != nil {
		return nil, err
	}
	if err := requireText("type", string(typ)); err != nil {
		return nil, err
	}
	return &Parameter{Name: name, Type: typ, Default: def}, nil
}

func StringParameter(name, displayName, def string, allowed ...string) *Parameter {
	p := Must(NewParameter(name, ParameterString, def))
	p.DisplayName = displayName
	p.Values = allowed
	return p
}

func BooleanParameter(name, displayName string, def bool) *Parameter {
	p := Must(NewParameter(name, ParameterBoolean, def))
	p.DisplayName = displayName
	return p
}

func NumberParameter(name, displayName string, def int) *Parameter {
	p := Must(NewParameter(name, ParameterNumber, def))
	p.DisplayName = displayName
	return p
}

func ObjectParameter(name, displayName string, def any) *Parameter {
	p := Must(NewParameter(name, ParameterObject, def))
	p.DisplayName = displayName
	return p
}

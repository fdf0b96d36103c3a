package pipeline

import (
	"github.com/goliatone/go-pipelines/conditioned"
)

// StagesTemplate is a template file contributing stages.
type StagesTemplate struct {
	Parameters []*Parameter `yaml:"parameters,omitempty"`
	Stages     Stages       `yaml:"stages"`
}

// JobsTemplate is a template file contributing jobs.
type JobsTemplate struct {
	Parameters []*Parameter `yaml:"parameters,omitempty"`
	Jobs       Jobs         `yaml:"jobs"`
}

// StepsTemplate is a template file contributing steps.
type StepsTemplate struct {
	Parameters []*Parameter `yaml:"parameters,omitempty"`
	Steps      Steps        `yaml:"steps"`
}

// VariablesTemplate is a template file contributing variables.
type VariablesTemplate struct {
	Parameters []*Parameter `yaml:"parameters,omitempty"`
	Variables  Variables    `yaml:"variables"`
}

// Template references for each section kind.

func StageTemplate(path string, params ...conditioned.Parameter) *conditioned.Definition[*Stage] {
	return conditioned.Template[*Stage](path, params...)
}

func JobTemplate(path string, params ...conditioned.Parameter) *conditioned.Definition[JobBase] {
	return conditioned.Template[JobBase](path, params...)
}

func StepTemplate(path string, params ...conditioned.Parameter) *conditioned.Definition[Step] {
	return conditioned.Template[Step](path, params...)
}

func VariableTemplate(path string, params ...conditioned.Parameter) *conditioned.Definition[VariableBase] {
	return conditioned.Template[VariableBase](path, params...)
}

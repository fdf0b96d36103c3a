package pipeline

import (
	"github.com/goliatone/go-pipelines/conditioned"
)

type Stage struct {
	Name      string `yaml:"stage"`
	Common    `yaml:",inline"`
	Variables Variables `yaml:"variables,omitempty"`
	Jobs      Jobs      `yaml:"jobs"`
}

// Stages is a conditioned list of stages.
type Stages = conditioned.List[*Stage]

func StagesOf(stages ...*Stage) Stages {
	return conditioned.ListOf(stages...)
}

func NewStage(name string, jobs Jobs, opts ...Option) (*Stage, error) {
	if err := requireText("name", name); err != nil {
		return nil, err
	}
	return &Stage{Name: name, Common: newCommon(opts), Jobs: jobs}, nil
}

// StageOf is NewStage for fluent chains.
func StageOf(name string, jobs Jobs, opts ...Option) *Stage {
	return Must(NewStage(name, jobs, opts...))
}

func (s *Stage) WithVariables(vars Variables) *Stage {
	s.Variables = vars
	return s
}

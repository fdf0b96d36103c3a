package pipeline

// Header holds the document level properties shared by every pipeline
// shape.
type Header struct {
	Name       string       `yaml:"name,omitempty"`
	Trigger    *Trigger     `yaml:"trigger,omitempty"`
	PR         *PRTrigger   `yaml:"pr,omitempty"`
	Schedules  []*Schedule  `yaml:"schedules,omitempty"`
	Resources  *Resources   `yaml:"resources,omitempty"`
	Parameters []*Parameter `yaml:"parameters,omitempty"`
	Variables  Variables    `yaml:"variables,omitempty"`
	Pool       *Pool        `yaml:"pool,omitempty"`
}

// Pipeline is a multi stage pipeline document.
type Pipeline struct {
	Header `yaml:",inline"`
	Stages Stages `yaml:"stages"`
}

// SingleStagePipeline lists jobs without a stages section.
type SingleStagePipeline struct {
	Header `yaml:",inline"`
	Jobs   Jobs `yaml:"jobs"`
}

// SingleJobPipeline lists steps without stages or jobs.
type SingleJobPipeline struct {
	Header `yaml:",inline"`
	Steps  Steps `yaml:"steps"`
}

// AddRepository declares a repository resource.
func (h *Header) AddRepository(repos ...*RepositoryResource) *Header {
	if h.Resources == nil {
		h.Resources = &Resources{}
	}
	h.Resources.Repositories = append(h.Resources.Repositories, repos...)
	return h
}

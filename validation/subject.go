package validation

import (
	"fmt"

	"github.com/goliatone/go-pipelines/pipeline"
)

// subject exposes the sections of a document and flattens them on first use.
type subject struct {
	header *pipeline.Header
	stages *pipeline.Stages
	jobs   *pipeline.Jobs
	direct *pipeline.Steps

	scopeCache []scope
	stepCache  []locatedStep
	scoped     bool
	stepped    bool
}

type scope struct {
	kind  string
	items []named
}

type locatedStep struct {
	step pipeline.Step
	path string
}

func newSubject(doc any) *subject {
	switch d := doc.(type) {
	case *pipeline.Pipeline:
		return &subject{header: &d.Header, stages: &d.Stages}
	case *pipeline.SingleStagePipeline:
		return &subject{header: &d.Header, jobs: &d.Jobs}
	case *pipeline.SingleJobPipeline:
		return &subject{header: &d.Header, direct: &d.Steps}
	case *pipeline.StagesTemplate:
		return &subject{stages: &d.Stages}
	case *pipeline.JobsTemplate:
		return &subject{jobs: &d.Jobs}
	case *pipeline.StepsTemplate:
		return &subject{direct: &d.Steps}
	case *pipeline.VariablesTemplate:
		return &subject{}
	}
	return nil
}

// scopes groups stages, and the jobs of each stage, into name scopes.
func (s *subject) scopes() []scope {
	if s.scoped {
		return s.scopeCache
	}
	s.scoped = true

	if s.stages != nil {
		stageScope := scope{kind: "stage"}
		for _, stage := range s.stages.Flatten() {
			if stage == nil {
				continue
			}
			path := fmt.Sprintf("stages[%s]", stage.Name)
			stageScope.items = append(stageScope.items, named{name: stage.Name, dependsOn: stage.DependsOn, path: path})
			s.scopeCache = append(s.scopeCache, jobScope(path+".", stage.Jobs))
		}
		s.scopeCache = append([]scope{stageScope}, s.scopeCache...)
	}
	if s.jobs != nil {
		s.scopeCache = append(s.scopeCache, jobScope("", *s.jobs))
	}
	return s.scopeCache
}

func jobScope(prefix string, jobs pipeline.Jobs) scope {
	sc := scope{kind: "job"}
	for _, job := range jobs.Flatten() {
		if job == nil {
			continue
		}
		sc.items = append(sc.items, named{
			name:      job.JobName(),
			dependsOn: job.Dependencies(),
			path:      fmt.Sprintf("%sjobs[%s]", prefix, job.JobName()),
		})
	}
	return sc
}

// steps returns every step of the document with its location.
func (s *subject) steps() []locatedStep {
	if s.stepped {
		return s.stepCache
	}
	s.stepped = true

	if s.stages != nil {
		for _, stage := range s.stages.Flatten() {
			if stage == nil {
				continue
			}
			s.collectJobs(fmt.Sprintf("stages[%s].", stage.Name), stage.Jobs)
		}
	}
	if s.jobs != nil {
		s.collectJobs("", *s.jobs)
	}
	if s.direct != nil {
		s.collectSteps("", *s.direct)
	}
	return s.stepCache
}

func (s *subject) collectJobs(prefix string, jobs pipeline.Jobs) {
	for _, job := range jobs.Flatten() {
		if job == nil {
			continue
		}
		jobPrefix := fmt.Sprintf("%sjobs[%s].", prefix, job.JobName())
		for _, steps := range job.JobSteps() {
			s.collectSteps(jobPrefix, steps)
		}
	}
}

func (s *subject) collectSteps(prefix string, steps pipeline.Steps) {
	for i, step := range steps.Flatten() {
		s.stepCache = append(s.stepCache, locatedStep{step: step, path: fmt.Sprintf("%ssteps[%d]", prefix, i)})
	}
}

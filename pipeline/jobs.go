package pipeline

import (
	"github.com/goliatone/go-pipelines/conditioned"
)

// JobBase is an entry of a jobs section: a Job or a DeploymentJob.
type JobBase interface {
	JobName() string
	Dependencies() []string
	// JobSteps lists every steps section the job runs.
	JobSteps() []Steps
	isJob()
}

// Jobs is a conditioned list of jobs.
type Jobs = conditioned.List[JobBase]

func JobsOf(jobs ...JobBase) Jobs {
	return conditioned.ListOf(jobs...)
}

type Workspace struct {
	// Clean is one of outputs, resources or all.
	Clean string `yaml:"clean,omitempty"`
}

type Job struct {
	Name             string `yaml:"job"`
	Common           `yaml:",inline"`
	Pool             *Pool                  `yaml:"pool,omitempty"`
	TimeoutInMinutes conditioned.Value[int] `yaml:"timeoutInMinutes,omitempty"`
	ContinueOnError  bool                   `yaml:"continueOnError,omitempty"`
	Workspace        *Workspace             `yaml:"workspace,omitempty"`
	Variables        Variables              `yaml:"variables,omitempty"`
	Steps            Steps                  `yaml:"steps"`
}

func NewJob(name string, steps Steps, opts ...Option) (*Job, error) {
	if err := requireText("name", name); err != nil {
		return nil, err
	}
	return &Job{Name: name, Common: newCommon(opts), Steps: steps}, nil
}

// JobOf is NewJob for fluent chains.
func JobOf(name string, steps Steps, opts ...Option) *Job {
	return Must(NewJob(name, steps, opts...))
}

func (j *Job) JobName() string        { return j.Name }
func (j *Job) Dependencies() []string { return j.DependsOn }
func (j *Job) JobSteps() []Steps      { return []Steps{j.Steps} }
func (*Job) isJob()                   {}

func (j *Job) WithPool(pool *Pool) *Job {
	j.Pool = pool
	return j
}

func (j *Job) WithVariables(vars Variables) *Job {
	j.Variables = vars
	return j
}

func (j *Job) WithTimeout(minutes conditioned.Value[int]) *Job {
	j.TimeoutInMinutes = minutes
	return j
}

func (j *Job) WithWorkspace(clean string) *Job {
	j.Workspace = &Workspace{Clean: clean}
	return j
}

// Hook is a lifecycle hook of a deployment strategy.
type Hook struct {
	Steps Steps `yaml:"steps"`
}

type RunOnce struct {
	PreDeploy *Hook `yaml:"preDeploy,omitempty"`
	Deploy    Hook  `yaml:"deploy"`
	OnFailure *Hook `yaml:"onFailure,omitempty"`
	OnSuccess *Hook `yaml:"onSuccess,omitempty"`
}

type Strategy struct {
	RunOnce RunOnce `yaml:"runOnce"`
}

// DeploymentJob deploys to an environment with the runOnce strategy.
type DeploymentJob struct {
	Name             string `yaml:"deployment"`
	Common           `yaml:",inline"`
	Environment      string                 `yaml:"environment"`
	Pool             *Pool                  `yaml:"pool,omitempty"`
	TimeoutInMinutes conditioned.Value[int] `yaml:"timeoutInMinutes,omitempty"`
	ContinueOnError  bool                   `yaml:"continueOnError,omitempty"`
	Variables        Variables              `yaml:"variables,omitempty"`
	Strategy         Strategy               `yaml:"strategy"`
}

func NewDeploymentJob(name, environment string, deploy Steps, opts ...Option) (*DeploymentJob, error) {
	if err := requireText("name", name); err != nil {
		return nil, err
	}
	if err := requireText("environment", environment); err != nil {
		return nil, err
	}
	return &DeploymentJob{
		Name:        name,
		Common:      newCommon(opts),
		Environment: environment,
		Strategy:    Strategy{RunOnce: RunOnce{Deploy: Hook{Steps: deploy}}},
	}, nil
}

func Deployment(name, environment string, deploy Steps, opts ...Option) *DeploymentJob {
	return Must(NewDeploymentJob(name, environment, deploy, opts...))
}

func (d *DeploymentJob) JobName() string        { return d.Name }
func (d *DeploymentJob) Dependencies() []string { return d.DependsOn }
func (*DeploymentJob) isJob()                   {}

func (d *DeploymentJob) JobSteps() []Steps {
	run := d.Strategy.RunOnce
	out := []Steps{run.Deploy.Steps}
	for _, hook := range []*Hook{run.PreDeploy, run.OnFailure, run.OnSuccess} {
		if hook != nil {
			out = append(out, hook.Steps)
		}
	}
	return out
}

func (d *DeploymentJob) WithPool(pool *Pool) *DeploymentJob {
	d.Pool = pool
	return d
}

func (d *DeploymentJob) WithVariables(vars Variables) *DeploymentJob {
	d.Variables = vars
	return d
}

// OnFailure adds steps run when the deploy hook fails.
func (d *DeploymentJob) OnFailure(steps Steps) *DeploymentJob {
	d.Strategy.RunOnce.OnFailure = &Hook{Steps: steps}
	return d
}

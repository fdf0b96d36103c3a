package pipeline

import (
	"github.com/goliatone/go-pipelines/conditioned"
	"github.com/goliatone/go-pipelines/expr"
)

// Step is an entry of a steps section.
type Step interface {
	isStep()
}

// Steps is a conditioned list of steps.
type Steps = conditioned.List[Step]

// StepsOf builds an unconditioned steps list.
func StepsOf(steps ...Step) Steps {
	return conditioned.ListOf(steps...)
}

// StepBase holds the properties every step kind accepts.
type StepBase struct {
	DisplayName      string                 `yaml:"displayName,omitempty"`
	Name             string                 `yaml:"name,omitempty"`
	Condition        expr.Condition         `yaml:"condition,omitempty"`
	ContinueOnError  bool                   `yaml:"continueOnError,omitempty"`
	Enabled          *bool                  `yaml:"enabled,omitempty"`
	TimeoutInMinutes conditioned.Value[int] `yaml:"timeoutInMinutes,omitempty"`
	Env              map[string]string      `yaml:"env,omitempty"`
}

func (StepBase) isStep() {}

// StepOption configures the shared step properties.
type StepOption func(*StepBase)

func DisplayAs(name string) StepOption {
	return func(s *StepBase) {
		s.DisplayName = name
	}
}

// Named sets the step reference name used by output variables.
func Named(name string) StepOption {
	return func(s *StepBase) {
		s.Name = name
	}
}

func RunWhen(c expr.Condition) StepOption {
	return func(s *StepBase) {
		s.Condition = c
	}
}

func ContinueOnError() StepOption {
	return func(s *StepBase) {
		s.ContinueOnError = true
	}
}

func Disabled() StepOption {
	return func(s *StepBase) {
		enabled := false
		s.Enabled = &enabled
	}
}

func StepTimeout(minutes conditioned.Value[int]) StepOption {
	return func(s *StepBase) {
		s.TimeoutInMinutes = minutes
	}
}

// WithEnv adds an environment variable mapping for the step.
func WithEnv(key, value string) StepOption {
	return func(s *StepBase) {
		if s.Env == nil {
			s.Env = make(map[string]string)
		}
		s.Env[key] = value
	}
}

func newStepBase(opts []StepOption) StepBase {
	var base StepBase
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}
	return base
}

type ScriptStep struct {
	Script           string `yaml:"script"`
	WorkingDirectory string `yaml:"workingDirectory,omitempty"`
	StepBase         `yaml:",inline"`
}

func NewScript(script string, opts ...StepOption) (*ScriptStep, error) {
	if err := requireText("script", script); err != nil {
		return nil, err
	}
	return &ScriptStep{Script: script, StepBase: newStepBase(opts)}, nil
}

// Script is NewScript for fluent chains.
func Script(script string, opts ...StepOption) *ScriptStep {
	return Must(NewScript(script, opts...))
}

type BashStep struct {
	Bash             string `yaml:"bash"`
	WorkingDirectory string `yaml:"workingDirectory,omitempty"`
	FailOnStderr     bool   `yaml:"failOnStderr,omitempty"`
	StepBase         `yaml:",inline"`
}

func NewBash(script string, opts ...StepOption) (*BashStep, error) {
	if err := requireText("bash", script); err != nil {
		return nil, err
	}
	return &BashStep{Bash: script, StepBase: newStepBase(opts)}, nil
}

func Bash(script string, opts ...StepOption) *BashStep {
	return Must(NewBash(script, opts...))
}

// PowerShellStep renders as `powershell` (Windows PowerShell) or `pwsh`
// (PowerShell Core).
type PowerShellStep struct {
	PowerShell            string `yaml:"powershell,omitempty"`
	Pwsh                  string `yaml:"pwsh,omitempty"`
	ErrorActionPreference string `yaml:"errorActionPreference,omitempty"`
	WorkingDirectory      string `yaml:"workingDirectory,omitempty"`
	StepBase              `yaml:",inline"`
}

func NewPowerShell(script string, core bool, opts ...StepOption) (*PowerShellStep, error) {
	if err := requireText("script", script); err != nil {
		return nil, err
	}
	step := &PowerShellStep{StepBase: newStepBase(opts)}
	if core {
		step.Pwsh = script
	} else {
		step.PowerShell = script
	}
	return step, nil
}

func PowerShell(script string, opts ...StepOption) *PowerShellStep {
	return Must(NewPowerShell(script, false, opts...))
}

func Pwsh(script string, opts ...StepOption) *PowerShellStep {
	return Must(NewPowerShell(script, true, opts...))
}

// TaskStep runs a marketplace or built-in task, e.g. "DotNetCoreCLI@2".
type TaskStep struct {
	Task     string `yaml:"task"`
	StepBase `yaml:",inline"`
	Inputs   map[string]string `yaml:"inputs,omitempty"`
}

func NewTask(task string, inputs map[string]string, opts ...StepOption) (*TaskStep, error) {
	if err := requireText("task", task); err != nil {
		return nil, err
	}
	step := &TaskStep{Task: task, StepBase: newStepBase(opts)}
	if len(inputs) > 0 {
		step.Inputs = make(map[string]string, len(inputs))
		for k, v := range inputs {
			step.Inputs[k] = v
		}
	}
	return step, nil
}

func Task(task string, inputs map[string]string, opts ...StepOption) *TaskStep {
	return Must(NewTask(task, inputs, opts...))
}

const (
	CheckoutSelf = "self"
	CheckoutNone = "none"
)

// CheckoutStep checks out self, nothing, or a repository resource alias.
type CheckoutStep struct {
	Checkout           string `yaml:"checkout"`
	Clean              *bool  `yaml:"clean,omitempty"`
	FetchDepth         int    `yaml:"fetchDepth,omitempty"`
	Lfs                bool   `yaml:"lfs,omitempty"`
	Submodules         string `yaml:"submodules,omitempty"`
	Path               string `yaml:"path,omitempty"`
	PersistCredentials bool   `yaml:"persistCredentials,omitempty"`
	StepBase           `yaml:",inline"`
}

func NewCheckout(repository string, opts ...StepOption) (*CheckoutStep, error) {
	if err := requireText("repository", repository); err != nil {
		return nil, err
	}
	return &CheckoutStep{Checkout: repository, StepBase: newStepBase(opts)}, nil
}

func Checkout(repository string, opts ...StepOption) *CheckoutStep {
	return Must(NewCheckout(repository, opts...))
}

// DownloadStep downloads artifacts from the current or another pipeline.
type DownloadStep struct {
	Download string `yaml:"download"`
	Artifact string `yaml:"artifact,omitempty"`
	Patterns string `yaml:"patterns,omitempty"`
	StepBase `yaml:",inline"`
}

func NewDownload(source, artifact string, opts ...StepOption) (*DownloadStep, error) {
	if err := requireText("source", source); err != nil {
		return nil, err
	}
	return &DownloadStep{Download: source, Artifact: artifact, StepBase: newStepBase(opts)}, nil
}

func Download(source, artifact string, opts ...StepOption) *DownloadStep {
	return Must(NewDownload(source, artifact, opts...))
}

// PublishStep publishes a path as a pipeline artifact.
type PublishStep struct {
	Publish  string `yaml:"publish"`
	Artifact string `yaml:"artifact,omitempty"`
	StepBase `yaml:",inline"`
}

func NewPublish(path, artifact string, opts ...StepOption) (*PublishStep, error) {
	if err := requireText("path", path); err != nil {
		return nil, err
	}
	return &PublishStep{Publish: path, Artifact: artifact, StepBase: newStepBase(opts)}, nil
}

func Publish(path, artifact string, opts ...StepOption) *PublishStep {
	return Must(NewPublish(path, artifact, opts...))
}

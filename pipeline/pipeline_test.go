package pipeline

import (
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-pipelines/conditioned"
	"github.com/goliatone/go-pipelines/emit"
	"github.com/goliatone/go-pipelines/expr"
)

func render(t *testing.T, doc any) string {
	t.Helper()
	out, err := emit.Marshal(doc)
	require.NoError(t, err)
	return string(out)
}

func TestPipelineDocument(t *testing.T) {
	vars := VariablesOf(Var("Configuration", "Release"), Group("shared"))
	vars.Add(IfVariable().IsBranch("main").Append(Var("Deploy", true)))

	build := JobOf("Build", StepsOf(
		Checkout(CheckoutSelf),
		Bash("make build", DisplayAs("Build")),
	)).WithPool(HostedPool("ubuntu-latest"))

	doc := &Pipeline{
		Header: Header{
			Name:      "$(Date:yyyyMMdd)$(Rev:.r)",
			Trigger:   BranchTrigger("main"),
			PR:        NoPRTrigger(),
			Variables: vars,
		},
		Stages: StagesOf(StageOf("Build", JobsOf(build))),
	}

	assert.Equal(t, `name: $(Date:yyyyMMdd)$(Rev:.r)
trigger:
  branches:
    include:
    - main
pr: none
variables:
- name: Configuration
  value: Release
- group: shared
- ${{ if eq(variables['Build.SourceBranch'], 'refs/heads/main') }}:
  - name: Deploy
    value: true
stages:
- stage: Build
  jobs:
  - job: Build
    pool:
      vmImage: ubuntu-latest
    steps:
    - checkout: self
    - bash: make build
      displayName: Build
`, render(t, doc))
}

func TestConditionalStagesWithTemplate(t *testing.T) {
	stages := StagesOf(StageOf("Build", JobsOf(JobOf("Compile", StepsOf(Script("make"))))))
	stages.Add(IfStage().IsNotPullRequest().
		Append(StageOf("Publish", JobsOf(
			Deployment("Release", "production", StepsOf(Download("current", "drop"))),
		), DependsOn("Build"))).
		Template("stages/smoke.yml", conditioned.Param("region", "westeurope")))

	doc := &Pipeline{Stages: stages}
	assert.Equal(t, `stages:
- stage: Build
  jobs:
  - job: Compile
    steps:
    - script: make
- ${{ if ne(variables['Build.Reason'], 'PullRequest') }}:
  - stage: Publish
    dependsOn:
    - Build
    jobs:
    - deployment: Release
      environment: production
      strategy:
        runOnce:
          deploy:
            steps:
            - download: current
              artifact: drop
  - template: stages/smoke.yml
    parameters:
      region: westeurope
`, render(t, doc))
}

func TestSingleJobPipelineWithDisabledTrigger(t *testing.T) {
	doc := &SingleJobPipeline{
		Header: Header{Trigger: NoTrigger(), Pool: NamedPool("linux", "docker")},
		Steps: StepsOf(
			Task("DotNetCoreCLI@2", map[string]string{"command": "test"}, DisplayAs("Test"), RunWhen(expr.Succeeded())),
			Pwsh("Write-Host done", ContinueOnError()),
		),
	}

	assert.Equal(t, `trigger: none
pool:
  name: linux
  demands:
  - docker
steps:
- task: DotNetCoreCLI@2
  displayName: Test
  condition: succeeded()
  inputs:
    command: test
- pwsh: Write-Host done
  continueOnError: true
`, render(t, doc))
}

func TestStepOptions(t *testing.T) {
	step := Script("echo $(secret)",
		Named("echo"),
		Disabled(),
		WithEnv("SECRET", "$(secret)"),
		StepTimeout(conditioned.ParameterRef[int]("timeout")),
	)

	assert.Equal(t, `script: echo $(secret)
name: echo
enabled: false
timeoutInMinutes: ${{ parameters.timeout }}
env:
  SECRET: $(secret)
`, render(t, step))
}

func TestConstructorsRejectMissingArguments(t *testing.T) {
	cases := []struct {
		name     string
		build    func() error
		argument string
	}{
		{"job name", func() error { _, err := NewJob(" ", Steps{}); return err }, "name"},
		{"stage name", func() error { _, err := NewStage("", Jobs{}); return err }, "name"},
		{"deployment environment", func() error { _, err := NewDeploymentJob("d", "", Steps{}); return err }, "environment"},
		{"variable name", func() error { _, err := NewVariable("", 1); return err }, "name"},
		{"group", func() error { _, err := NewVariableGroup(""); return err }, "group"},
		{"script", func() error { _, err := NewScript(""); return err }, "script"},
		{"task", func() error { _, err := NewTask("", nil); return err }, "task"},
		{"checkout", func() error { _, err := NewCheckout(""); return err }, "repository"},
		{"schedule", func() error { _, err := NewSchedule("", "nightly"); return err }, "cron"},
		{"repository type", func() error { _, err := NewRepository("tools", "", "org/tools"); return err }, "type"},
		{"pool image", func() error { _, err := NewHostedPool(""); return err }, "vmImage"},
		{"parameter", func() error { _, err := NewParameter("", ParameterString, nil); return err }, "name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build()
			require.Error(t, err)
			var ge *errors.Error
			require.True(t, errors.As(err, &ge))
			assert.Equal(t, ErrCodeInvalidArgument, ge.TextCode)
			assert.Equal(t, tc.argument, ge.Metadata["argument"])
		})
	}
}

func TestMustPanicsWithConstructorError(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		ge, ok := r.(*errors.Error)
		require.True(t, ok)
		assert.Equal(t, ErrCodeInvalidArgument, ge.TextCode)
		assert.Equal(t, "name must not be empty", ge.Message)
	}()
	Var("", "x")
}

func TestJobStepsIncludeDeploymentHooks(t *testing.T) {
	deploy := Deployment("Release", "prod", StepsOf(Checkout("tools"))).
		OnFailure(StepsOf(Script("rollback")))

	steps := deploy.JobSteps()
	require.Len(t, steps, 2)
	assert.Len(t, steps[1].Flatten(), 1)
}

func TestTemplateFiles(t *testing.T) {
	doc := &StepsTemplate{
		Parameters: []*Parameter{BooleanParameter("runTests", "Run tests", true)},
		Steps: StepsOf(Script("make")),
	}
	steps := doc.Steps
	steps.Add(IfStep().Equal(expr.Parameter("runTests"), "true").Append(Script("make test")))
	doc.Steps = steps

	assert.Equal(t, `parameters:
- name: runTests
  displayName: Run tests
  type: boolean
  default: true
steps:
- script: make
- ${{ if eq(parameters.runTests, true) }}:
  - script: make test
`, render(t, doc))
}

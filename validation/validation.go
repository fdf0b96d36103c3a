package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	rcron "github.com/robfig/cron/v3"

	"github.com/goliatone/go-pipelines/pipeline"
)

const (
	CodeInvalidName       = "PIPE001_INVALID_NAME"
	CodeDuplicateName     = "PIPE002_DUPLICATE_NAME"
	CodeUnknownDependency = "PIPE003_UNKNOWN_DEPENDENCY"
	CodeSelfDependency    = "PIPE004_SELF_DEPENDENCY"
	CodeUnknownRepository = "PIPE005_UNKNOWN_REPOSITORY"
	CodeInvalidCron       = "PIPE006_INVALID_CRON"
)

// Finding is a single validation result.
type Finding struct {
	Code     string   `json:"code" yaml:"code"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	Path     string   `json:"path" yaml:"path"`
}

// Settings assigns a severity to each check.
type Settings struct {
	NameFields          Severity `json:"nameFields" yaml:"nameFields"`
	DependsOnFields     Severity `json:"dependsOnFields" yaml:"dependsOnFields"`
	RepositoryCheckouts Severity `json:"repositoryCheckouts" yaml:"repositoryCheckouts"`
	Schedules           Severity `json:"schedules" yaml:"schedules"`
}

// Validate rejects severities outside Off..Error.
func (s Settings) Validate() error {
	inRange := []ozzo.Rule{ozzo.Min(Off), ozzo.Max(Error)}
	return ozzo.ValidateStruct(&s,
		ozzo.Field(&s.NameFields, inRange...),
		ozzo.Field(&s.DependsOnFields, inRange...),
		ozzo.Field(&s.RepositoryCheckouts, inRange...),
		ozzo.Field(&s.Schedules, inRange...),
	)
}

// DefaultSettings reports every check as an error.
func DefaultSettings() Settings {
	return Settings{
		NameFields:          Error,
		DependsOnFields:     Error,
		RepositoryCheckouts: Error,
		Schedules:           Error,
	}
}

type check struct {
	severity Severity
	run      func(*subject, Severity) []Finding
}

// Run validates a pipeline or template document. Checks set to Off are
// skipped before any tree is flattened. Unknown document types produce no
// findings.
func Run(doc any, settings Settings) []Finding {
	s := newSubject(doc)
	if s == nil {
		return nil
	}

	checks := []check{
		{settings.NameFields, checkNames},
		{settings.DependsOnFields, checkDependencies},
		{settings.RepositoryCheckouts, checkRepositories},
		{settings.Schedules, checkSchedules},
	}

	var findings []Finding
	for _, c := range checks {
		if c.severity == Off {
			continue
		}
		findings = append(findings, c.run(s, c.severity)...)
	}
	sortFindings(findings)
	return findings
}

// HasErrors reports whether any finding has Error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity >= Error {
			return true
		}
	}
	return false
}

func sortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		return a.Message < b.Message
	})
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type named struct {
	name      string
	dependsOn []string
	path      string
}

func checkNames(s *subject, sev Severity) []Finding {
	var out []Finding
	for _, scope := range s.scopes() {
		seen := make(map[string]bool)
		for _, item := range scope.items {
			if !namePattern.MatchString(item.name) {
				out = append(out, Finding{
					Code:     CodeInvalidName,
					Severity: sev,
					Message:  fmt.Sprintf("%s name %q may only contain letters, digits and underscores", scope.kind, item.name),
					Path:     item.path,
				})
			}
			if item.name == "" {
				continue
			}
			if seen[item.name] {
				out = append(out, Finding{
					Code:     CodeDuplicateName,
					Severity: sev,
					Message:  fmt.Sprintf("%s name %q is declared more than once", scope.kind, item.name),
					Path:     item.path,
				})
			}
			seen[item.name] = true
		}
	}
	return out
}

func checkDependencies(s *subject, sev Severity) []Finding {
	var out []Finding
	for _, scope := range s.scopes() {
		known := make(map[string]bool, len(scope.items))
		for _, item := range scope.items {
			known[item.name] = true
		}
		for _, item := range scope.items {
			for _, dep := range item.dependsOn {
				switch {
				case dep == item.name:
					out = append(out, Finding{
						Code:     CodeSelfDependency,
						Severity: sev,
						Message:  fmt.Sprintf("%s %q depends on itself", scope.kind, item.name),
						Path:     item.path,
					})
				case !known[dep]:
					out = append(out, Finding{
						Code:     CodeUnknownDependency,
						Severity: sev,
						Message:  fmt.Sprintf("%s %q depends on unknown %s %q", scope.kind, item.name, scope.kind, dep),
						Path:     item.path,
					})
				}
			}
		}
	}
	return out
}

func checkRepositories(s *subject, sev Severity) []Finding {
	// Template files cannot declare resources, so aliases are resolved by the
	// including pipeline.
	if s.header == nil {
		return nil
	}
	declared := make(map[string]bool)
	for _, alias := range s.header.Resources.RepositoryAliases() {
		declared[alias] = true
	}

	var out []Finding
	for _, step := range s.steps() {
		checkout, ok := step.step.(*pipeline.CheckoutStep)
		if !ok {
			continue
		}
		repo := checkout.Checkout
		if repo == pipeline.CheckoutSelf || repo == pipeline.CheckoutNone || declared[repo] {
			continue
		}
		out = append(out, Finding{
			Code:     CodeUnknownRepository,
			Severity: sev,
			Message:  fmt.Sprintf("checkout of %q does not match a declared repository resource", repo),
			Path:     step.path,
		})
	}
	return out
}

func checkSchedules(s *subject, sev Severity) []Finding {
	if s.header == nil {
		return nil
	}
	var out []Finding
	for i, schedule := range s.header.Schedules {
		if schedule == nil {
			continue
		}
		if problem := cronProblem(schedule.Cron); problem != "" {
			out = append(out, Finding{
				Code:     CodeInvalidCron,
				Severity: sev,
				Message:  fmt.Sprintf("schedule %q: %s", schedule.Cron, problem),
				Path:     fmt.Sprintf("schedules[%d]", i),
			})
		}
	}
	return out
}

// cronProblem describes why expr is not a five field cron expression, or
// returns "" when it is. Descriptors such as @daily are not accepted by Azure
// Pipelines.
func cronProblem(expr string) string {
	if strings.HasPrefix(strings.TrimSpace(expr), "@") {
		return "descriptors are not supported"
	}
	if _, err := rcron.ParseStandard(expr); err != nil {
		return err.Error()
	}
	return ""
}

package pipeline

// Filter is an include/exclude pair used by branch, path and tag filters.
type Filter struct {
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

func Include(values ...string) *Filter {
	return &Filter{Include: values}
}

// Excluding adds exclusions to the filter.
func (f *Filter) Excluding(values ...string) *Filter {
	f.Exclude = append(f.Exclude, values...)
	return f
}

// Trigger is the CI trigger. A disabled trigger renders as `none`.
type Trigger struct {
	Disabled bool
	Batch    bool
	Branches *Filter
	Paths    *Filter
	Tags     *Filter
}

type triggerFields struct {
	Batch    bool    `yaml:"batch,omitempty"`
	Branches *Filter `yaml:"branches,omitempty"`
	Paths    *Filter `yaml:"paths,omitempty"`
	Tags     *Filter `yaml:"tags,omitempty"`
}

// NoTrigger disables CI runs.
func NoTrigger() *Trigger {
	return &Trigger{Disabled: true}
}

// BranchTrigger runs CI for pushes to the given branches.
func BranchTrigger(branches ...string) *Trigger {
	return &Trigger{Branches: Include(branches...)}
}

func (t Trigger) MarshalYAML() (any, error) {
	if t.Disabled {
		return "none", nil
	}
	return triggerFields{Batch: t.Batch, Branches: t.Branches, Paths: t.Paths, Tags: t.Tags}, nil
}

// PRTrigger is the pull request trigger. A disabled trigger renders as `none`.
type PRTrigger struct {
	Disabled   bool
	AutoCancel *bool
	Drafts     *bool
	Branches   *Filter
	Paths      *Filter
}

type prTriggerFields struct {
	AutoCancel *bool   `yaml:"autoCancel,omitempty"`
	Drafts     *bool   `yaml:"drafts,omitempty"`
	Branches   *Filter `yaml:"branches,omitempty"`
	Paths      *Filter `yaml:"paths,omitempty"`
}

func NoPRTrigger() *PRTrigger {
	return &PRTrigger{Disabled: true}
}

func BranchPRTrigger(branches ...string) *PRTrigger {
	return &PRTrigger{Branches: Include(branches...)}
}

func (t PRTrigger) MarshalYAML() (any, error) {
	if t.Disabled {
		return "none", nil
	}
	return prTriggerFields{AutoCancel: t.AutoCancel, Drafts: t.Drafts, Branches: t.Branches, Paths: t.Paths}, nil
}

// Schedule is a cron based trigger. Cron syntax is checked by validation,
// not at construction.
type Schedule struct {
	Cron        string  `yaml:"cron"`
	DisplayName string  `yaml:"displayName,omitempty"`
	Branches    *Filter `yaml:"branches,omitempty"`
	Batch       bool    `yaml:"batch,omitempty"`
	Always      bool    `yaml:"always,omitempty"`
}

func NewSchedule(cron, displayName string, branches ...string) (*Schedule, error) {
	if err := requireText("cron", cron); err != nil {
		return nil, err
	}
	s := &Schedule{Cron: cron, DisplayName: displayName}
	if len(branches) > 0 {
		s.Branches = Include(branches...)
	}
	return s, nil
}

func Cron(cron, displayName string, branches ...string) *Schedule {
	return Must(NewSchedule(cron, displayName, branches...))
}

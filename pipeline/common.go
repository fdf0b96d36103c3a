package pipeline

import (
	"github.com/goliatone/go-pipelines/expr"
)

// Common holds the properties shared by stages and jobs.
type Common struct {
	DisplayName string         `yaml:"displayName,omitempty"`
	DependsOn   []string       `yaml:"dependsOn,omitempty"`
	Condition   expr.Condition `yaml:"condition,omitempty"`
}

// Option configures the shared stage and job properties.
type Option func(*Common)

func DisplayName(name string) Option {
	return func(c *Common) {
		c.DisplayName = name
	}
}

// DependsOn appends dependencies. Names refer to stages or jobs in the same
// scope.
func DependsOn(names ...string) Option {
	return func(c *Common) {
		c.DependsOn = append(c.DependsOn, names...)
	}
}

// When sets the runtime condition.
func When(c expr.Condition) Option {
	return func(common *Common) {
		common.Condition = c
	}
}

func newCommon(opts []Option) Common {
	var c Common
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

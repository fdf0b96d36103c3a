package pipelines

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goliatone/go-errors"
)

// CLI is the command line model shared by every definitions binary.
type CLI struct {
	Config   string `short:"c" type:"path" help:"Path to a YAML or JSON configuration file."`
	Out      string `short:"o" help:"Override the output directory."`
	LogLevel string `name:"log-level" help:"Override the log level (trace, debug, info, warn, error)."`

	Publish  PublishCmd  `cmd:"" help:"Serialize definitions and write the YAML files."`
	Validate ValidateCmd `cmd:"" help:"Build and validate definitions without writing files."`
	List     ListCmd     `cmd:"" help:"List the registered target files."`
}

type PublishCmd struct {
	FailIfChanged bool     `name:"fail-if-changed" help:"Fail instead of writing when a published file is out of date."`
	Targets       []string `arg:"" optional:"" help:"Target files to publish, all when empty."`
}

func (c *PublishCmd) Run(env *cliEnv) error {
	defs, err := env.registry.Lookup(c.Targets...)
	if err != nil {
		return err
	}
	publisher := NewPublisher(env.config, WithLogger(env.logger), WithFailIfChanged(c.FailIfChanged))
	results, err := publisher.Publish(env.ctx, defs...)
	env.report(results)
	return err
}

type ValidateCmd struct {
	Targets []string `arg:"" optional:"" help:"Target files to validate, all when empty."`
}

func (c *ValidateCmd) Run(env *cliEnv) error {
	defs, err := env.registry.Lookup(c.Targets...)
	if err != nil {
		return err
	}
	results, err := NewPublisher(env.config, WithLogger(env.logger)).Validate(env.ctx, defs...)
	env.report(results)
	return err
}

type ListCmd struct{}

func (c *ListCmd) Run(env *cliEnv) error {
	for _, target := range env.registry.Targets() {
		fmt.Fprintln(env.stdout, target)
	}
	return nil
}

type cliEnv struct {
	ctx      context.Context
	registry *Registry
	config   Config
	logger   Logger
	stdout   io.Writer
}

func (e *cliEnv) report(results []Result) {
	for _, res := range results {
		line := fmt.Sprintf("%-9s %s", res.Status, res.Target)
		if len(res.Findings) > 0 {
			line += fmt.Sprintf(" (%d findings)", len(res.Findings))
		}
		fmt.Fprintln(e.stdout, line)
	}
}

type runOptions struct {
	stdout io.Writer
	stderr io.Writer
	logger Logger
}

type RunOption func(*runOptions)

func WithOutput(stdout, stderr io.Writer) RunOption {
	return func(o *runOptions) {
		if stdout != nil {
			o.stdout = stdout
		}
		if stderr != nil {
			o.stderr = stderr
		}
	}
}

// WithRunLogger replaces the logger the configuration would build.
func WithRunLogger(logger Logger) RunOption {
	return func(o *runOptions) {
		o.logger = logger
	}
}

// Run parses args and executes the selected command against registry.
func Run(ctx context.Context, registry *Registry, args []string, opts ...RunOption) error {
	o := runOptions{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if registry == nil {
		registry = NewRegistry()
	}

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("pipelines"),
		kong.Description("Publish Azure DevOps pipeline definitions as YAML."),
		kong.Writers(o.stdout, o.stderr),
	)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "build command line parser")
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "parse arguments").
			WithTextCode(ErrCodeInvalidArguments)
	}

	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	logger := o.logger
	if logger == nil {
		logger = newConfiguredLogger(cfg.Log, o.stderr)
	}
	logger = withLoggerFields(logger.WithContext(ctx), map[string]any{"command": kctx.Command()})

	env := &cliEnv{ctx: ctx, registry: registry, config: cfg, logger: logger, stdout: o.stdout}
	return kctx.Run(env)
}

func (c *CLI) loadConfig() (Config, error) {
	cfg := DefaultConfig()
	if c.Config != "" {
		var err error
		if cfg, err = LoadConfig(c.Config); err != nil {
			return cfg, err
		}
	}
	if c.Out != "" {
		cfg.OutputDir = c.Out
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	return cfg, cfg.Validate()
}

func newConfiguredLogger(cfg LogConfig, out io.Writer) Logger {
	level := strings.ToLower(cfg.Level)
	if strings.EqualFold(cfg.Format, "json") {
		return NewJSONLogger(out, level)
	}
	return NewFmtLogger(out).WithLevel(level)
}

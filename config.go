package pipelines

import (
	"os"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pipelines/validation"
)

// TargetPlaceholder in header lines is replaced by the published file path.
const TargetPlaceholder = "{target}"

// Config controls where and how definitions are published.
type Config struct {
	OutputDir     string              `json:"output_dir" yaml:"output_dir"`
	Serialization SerializationConfig `json:"serialization" yaml:"serialization"`
	Validations   validation.Settings `json:"validations" yaml:"validations"`
	Log           LogConfig           `json:"log" yaml:"log"`
}

type SerializationConfig struct {
	IncludeHeader bool     `json:"include_header" yaml:"include_header"`
	Header        []string `json:"header,omitempty" yaml:"header,omitempty"`
	// Prettify separates top-level sections with a blank line.
	Prettify bool `json:"prettify" yaml:"prettify"`
}

type LogConfig struct {
	Format string `json:"format" yaml:"format"`
	Level  string `json:"level" yaml:"level"`
}

func DefaultConfig() Config {
	return Config{
		OutputDir: ".",
		Serialization: SerializationConfig{
			IncludeHeader: true,
			Header: []string{
				"DO NOT EDIT THIS FILE MANUALLY",
				"Generated by go-pipelines as " + TargetPlaceholder,
				"Change the Go definition and publish again instead",
			},
			Prettify: true,
		},
		Validations: validation.DefaultSettings(),
		Log:         LogConfig{Format: "text", Level: "info"},
	}
}

// ParseConfig reads YAML (or JSON) over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, errors.CategoryBadInput, "parse configuration").
			WithTextCode(ErrCodeConfigInvalid)
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads the configuration file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), errors.Wrap(err, errors.CategoryBadInput, "read configuration").
			WithTextCode(ErrCodeConfigInvalid).
			WithMetadata(map[string]any{"path": path})
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		var ge *errors.Error
		if errors.As(err, &ge) {
			return cfg, ge.WithMetadata(map[string]any{"path": path})
		}
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once as go-errors validation
// errors keyed by their config path.
func (c Config) Validate() error {
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	err := ozzo.ValidateStruct(&c,
		ozzo.Field(&c.OutputDir, ozzo.Required),
		ozzo.Field(&c.Validations),
		ozzo.Field(&c.Log),
	)
	if err != nil {
		return errors.FromOzzoValidation(err, ErrConfigInvalid.Message).
			WithTextCode(ErrCodeConfigInvalid)
	}
	return nil
}

func (l LogConfig) Validate() error {
	return ozzo.ValidateStruct(&l,
		ozzo.Field(&l.Format, ozzo.Required, ozzo.In("text", "json")),
		ozzo.Field(&l.Level, ozzo.Required, ozzo.In(configLevels()...)),
	)
}

// HeaderLines renders the configured header for target, or nil when headers
// are disabled.
func (s SerializationConfig) HeaderLines(target string) []string {
	if !s.IncludeHeader {
		return nil
	}
	out := make([]string, 0, len(s.Header))
	for _, line := range s.Header {
		out = append(out, strings.ReplaceAll(line, TargetPlaceholder, target))
	}
	return out
}

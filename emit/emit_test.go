package emit

import (
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type step struct {
	Script      string            `yaml:"script"`
	DisplayName string            `yaml:"displayName,omitempty"`
	Env         map[string]string `yaml:"env"`
	Tags        []string          `yaml:"tags"`
}

type job struct {
	Job   string `yaml:"job"`
	Steps []step `yaml:"steps"`
}

func TestMarshalCompactLayout(t *testing.T) {
	doc := map[string]any{
		"jobs": []job{{
			Job: "build",
			Steps: []step{
				{Script: "make", DisplayName: "Build", Tags: []string{"a", "b"}},
			},
		}},
	}

	out, err := Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, `jobs:
- job: build
  steps:
  - script: make
    displayName: Build
    tags:
    - a
    - b
`, string(out))
}

func TestMarshalOmitsEmptyCollections(t *testing.T) {
	out, err := Marshal(step{Script: "echo hi", Env: map[string]string{}, Tags: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "script: echo hi\n", string(out))
}

func TestMarshalKeepsEmptyConditionalBlocks(t *testing.T) {
	doc := map[string]any{"${{ if eq(a, b) }}": []string{}}
	out, err := Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "${{ if eq(a, b) }}: []\n", string(out))
}

func TestScalarStyles(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"plain", "hello world", "v: hello world\n"},
		{"number text stays plain", "1", "v: 1\n"},
		{"expression", "${{ parameters.name }}", "v: ${{ parameters.name }}\n"},
		{"macro", "$(Build.BuildId)", "v: $(Build.BuildId)\n"},
		{"empty", "", "v: ''\n"},
		{"colon space", "a: b", "v: 'a: b'\n"},
		{"leading indicator", "*.yml", "v: '*.yml'\n"},
		{"single quote doubled", "'x'", "v: '''x'''\n"},
		{"null text", "null", "v: 'null'\n"},
		{"dash word", "-flag", "v: -flag\n"},
		{"tab", "a\tb", "v: \"a\\tb\"\n"},
		{"multi line strip", "a\nb", "v: |-\n  a\n  b\n"},
		{"multi line clip", "a\nb\n", "v: |\n  a\n  b\n"},
		{"multi line keep", "a\n\n", "v: |+\n  a\n\n"},
		{"leading space", "  a\nb", "v: |2-\n    a\n  b\n"},
		{"leading blank line", "\nx", "v: |-\n\n  x\n"},
		{"leading blank then indented", "\n  indented\nnext", "v: |2-\n\n    indented\n  next\n"},
		{"blank lines only", "\n\n", "v: \"\\n\\n\"\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Marshal(map[string]string{"v": tc.value})
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(out))

			var back map[string]string
			require.NoError(t, yaml.Unmarshal(out, &back))
			assert.Equal(t, tc.value, back["v"])
		})
	}
}

func TestBlockScalarsReadBackInSequences(t *testing.T) {
	scripts := []string{"\n  indented\nnext", "  lead\ntail\n", "set -e\n\nmake\n\n"}
	doc := map[string]any{"steps": []map[string]string{
		{"bash": scripts[0]}, {"bash": scripts[1]}, {"bash": scripts[2]},
	}}
	out, err := Marshal(doc)
	require.NoError(t, err)

	var back struct {
		Steps []map[string]string `yaml:"steps"`
	}
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Len(t, back.Steps, 3)
	for i, script := range scripts {
		assert.Equal(t, script, back.Steps[i]["bash"])
	}
}

func TestNestedBlockScalarIndentation(t *testing.T) {
	doc := map[string]any{
		"steps": []map[string]string{{"bash": "set -e\nmake"}},
	}
	out, err := Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "steps:\n- bash: |-\n    set -e\n    make\n", string(out))
}

func TestMarshalIsIdempotent(t *testing.T) {
	doc := job{Job: "a", Steps: []step{{Script: "x"}, {Script: "y"}}}
	first, err := Marshal(doc)
	require.NoError(t, err)
	second, err := Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUnmarshalNotSupported(t *testing.T) {
	err := Unmarshal([]byte("a: b"), &map[string]string{})
	require.Error(t, err)

	var ge *errors.Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, ErrCodeReadNotSupported, ge.TextCode)
}

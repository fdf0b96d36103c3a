package conditioned

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type section struct {
	Variables List[variable] `yaml:"variables,omitempty"`
	Timeout   Value[int]     `yaml:"timeoutInMinutes,omitempty"`
}

func TestListAddWalksToRoot(t *testing.T) {
	inner := If[variable]().Equal("a", "b").
		Append(v("x", "1")).
		If().Equal("c", "d").
		Append(v("y", "2"))

	var list List[variable]
	list.Add(inner)
	list.Add(inner.EndIf())
	assert.Len(t, list.Items(), 1)
	assert.Same(t, inner.Root(), list.Items()[0])
}

func TestListMixesPlainAndConditional(t *testing.T) {
	list := ListOf(v("a", "1"))
	list.Add(If[variable]().IsPullRequest().Append(v("b", "2")))
	list.Append(v("c", "3"))

	assert.Equal(t, `variables:
- name: a
  value: 1
- ${{ if eq(variables['Build.Reason'], 'PullRequest') }}:
  - name: b
    value: 2
- name: c
  value: 3
`, render(t, section{Variables: list}))
}

func TestEmptyListIsOmitted(t *testing.T) {
	assert.Equal(t, "{}\n", render(t, section{}))
}

func TestFlattenVisitsEveryBranch(t *testing.T) {
	ifNode := If[variable]().Equal("a", "b").
		Append(v("one", "1")).
		If().Equal("c", "d").
		Append(v("two", "2")).
		EndIf()
	ifNode.Append(v("three", "3"))
	ifNode.Else().Append(v("four", "4"))

	list := ListOf(v("zero", "0"))
	list.Add(ifNode)
	list.Add(Each[variable]("e", "parameters.envs").Append(v("five", "5")))

	var names []string
	for _, item := range list.Flatten() {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"zero", "one", "two", "three", "four", "five"}, names)
}

func TestFlattenSkipsRepeatedNodes(t *testing.T) {
	def := If[variable]().Equal("a", "b").Append(v("x", "1"))
	got := Flatten(def, def.Root(), def)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].Name)
}

func TestEmissionIsIdempotent(t *testing.T) {
	list := ListOf(v("a", "1"))
	list.Add(If[variable]().Equal("a", "b").Append(v("b", "2")).Else().Append(v("b", "3")))
	doc := section{Variables: list}
	assert.Equal(t, render(t, doc), render(t, doc))
}

func TestValueForms(t *testing.T) {
	cases := []struct {
		name  string
		value Value[int]
		want  string
	}{
		{"literal", Literal(30), "timeoutInMinutes: 30\n"},
		{"variable", VariableRef[int]("timeout"), "timeoutInMinutes: $(timeout)\n"},
		{"parameter", ParameterRef[int]("timeout"), "timeoutInMinutes: ${{ parameters.timeout }}\n"},
		{"runtime", RuntimeRef[int]("variables.timeout"), "timeoutInMinutes: $[ variables.timeout ]\n"},
		{"empty", Value[int]{}, "{}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, render(t, section{Timeout: tc.value}))
		})
	}
}

func TestConditionalValue(t *testing.T) {
	tree := If[int]().IsBranch("main").Append(120)
	tree.Else().Append(30)

	out := render(t, section{Timeout: Conditional(tree)})
	assert.Equal(t, `timeoutInMinutes:
  ${{ if eq(variables['Build.SourceBranch'], 'refs/heads/main') }}: 120
  ${{ else }}: 30
`, out)

	got, ok := Literal(5).Get()
	assert.True(t, ok)
	assert.Equal(t, 5, got)
	_, ok = Conditional(tree).Get()
	assert.False(t, ok)
}

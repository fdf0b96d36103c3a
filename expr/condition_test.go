package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimitiveConditions(t *testing.T) {
	cases := []struct {
		name string
		cond Condition
		want string
	}{
		{"equal", Equal("a", "b"), "eq(a, b)"},
		{"not equal", NotEqual("a", "b"), "ne(a, b)"},
		{"and", And(Equal("a", "b"), NotEqual("c", "d")), "and(eq(a, b), ne(c, d))"},
		{"and variadic", And(Raw("x"), Raw("y"), Raw("z")), "and(x, y, z)"},
		{"or", Or(Raw("x"), Raw("y")), "or(x, y)"},
		{"not", Not(Succeeded()), "not(succeeded())"},
		{"xor", Xor(Raw("x"), Raw("y")), "xor(x, y)"},
		{"in", In("a", "'b'", "'c'"), "in(a, 'b', 'c')"},
		{"notIn", NotIn("a", "'b'"), "notIn(a, 'b')"},
		{"contains", Contains("a", "b"), "contains(a, b)"},
		{"startsWith", StartsWith("a", "b"), "startsWith(a, b)"},
		{"endsWith", EndsWith("a", "b"), "endsWith(a, b)"},
		{"containsValue", ContainsValue("parameters.list", "'x'"), "containsValue(parameters.list, 'x')"},
		{"gt", Greater("1", "2"), "gt(1, 2)"},
		{"le", LessOrEqual("1", "2"), "le(1, 2)"},
		{"custom", Function("coalesce", "a", "b"), "coalesce(a, b)"},
		{"raw trimmed", Raw("  always() "), "always()"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cond.String())
		})
	}
}

func TestPredicateSugar(t *testing.T) {
	assert.Equal(t, "eq(variables['Build.SourceBranch'], 'refs/heads/main')", IsBranch("main").String())
	assert.Equal(t, "eq(variables['Build.SourceBranch'], 'refs/tags/v1')", IsBranch("refs/tags/v1").String())
	assert.Equal(t, "ne(variables['Build.SourceBranch'], 'refs/heads/main')", IsNotBranch("main").String())
	assert.Equal(t, "eq(variables['Build.Reason'], 'PullRequest')", IsPullRequest().String())
	assert.Equal(t, "ne(variables['Build.Reason'], 'PullRequest')", IsNotPullRequest().String())
}

func TestQuoteAndReferences(t *testing.T) {
	assert.Equal(t, "'it''s'", Quote("it's"))
	assert.Equal(t, "parameters.env", Parameter("env"))
	assert.Equal(t, "variables['System.Debug']", Variable("System.Debug"))
}

func TestConditionTextMarshal(t *testing.T) {
	out, err := And(Succeeded(), IsPullRequest()).MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "and(succeeded(), eq(variables['Build.Reason'], 'PullRequest'))", string(out))
	assert.True(t, Condition{}.IsZero())
}

package expr

import (
	"strings"
)

// Condition is a rendered Azure Pipelines expression such as "eq(a, b)".
// Composite conditions keep the rendered text of their operands only.
type Condition struct {
	text string
}

// Raw wraps an already rendered expression.
func Raw(text string) Condition {
	return Condition{text: strings.TrimSpace(text)}
}

func (c Condition) String() string {
	return c.text
}

// IsZero reports whether the condition has no text.
func (c Condition) IsZero() bool {
	return c.text == ""
}

// MarshalText lets conditions be used directly in `condition:` fields.
func (c Condition) MarshalText() ([]byte, error) {
	return []byte(c.text), nil
}

// Function renders name(arg1, arg2, ...).
func Function(name string, args ...string) Condition {
	return Condition{text: name + "(" + strings.Join(args, ", ") + ")"}
}

func Equal(a, b string) Condition          { return Function("eq", a, b) }
func NotEqual(a, b string) Condition       { return Function("ne", a, b) }
func Greater(a, b string) Condition        { return Function("gt", a, b) }
func GreaterOrEqual(a, b string) Condition { return Function("ge", a, b) }
func Less(a, b string) Condition           { return Function("lt", a, b) }
func LessOrEqual(a, b string) Condition    { return Function("le", a, b) }
func Contains(haystack, needle string) Condition {
	return Function("contains", haystack, needle)
}
func StartsWith(value, prefix string) Condition {
	return Function("startsWith", value, prefix)
}
func EndsWith(value, suffix string) Condition {
	return Function("endsWith", value, suffix)
}

// ContainsValue renders containsValue(collection, value).
func ContainsValue(collection, value string) Condition {
	return Function("containsValue", collection, value)
}

// In renders in(value, candidates...).
func In(value string, candidates ...string) Condition {
	return Function("in", append([]string{value}, candidates...)...)
}

func NotIn(value string, candidates ...string) Condition {
	return Function("notIn", append([]string{value}, candidates...)...)
}

// And joins two or more conditions.
func And(first, second Condition, rest ...Condition) Condition {
	return Function("and", operands(first, second, rest)...)
}

// Or joins two or more conditions.
func Or(first, second Condition, rest ...Condition) Condition {
	return Function("or", operands(first, second, rest)...)
}

func Xor(a, b Condition) Condition {
	return Function("xor", a.text, b.text)
}

func Not(c Condition) Condition {
	return Function("not", c.text)
}

func Succeeded() Condition         { return Function("succeeded") }
func Failed() Condition            { return Function("failed") }
func SucceededOrFailed() Condition { return Function("succeededOrFailed") }
func Always() Condition            { return Function("always") }
func Canceled() Condition          { return Function("canceled") }

func operands(first, second Condition, rest []Condition) []string {
	out := make([]string, 0, 2+len(rest))
	out = append(out, first.text, second.text)
	for _, c := range rest {
		out = append(out, c.text)
	}
	return out
}

package conditioned

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	pendingIf := &Condition[variable]{kind: KindIf, operands: []string{"x"}}
	pendingElseIf := &Condition[variable]{kind: KindElseIf, operands: []string{"x"}}
	pendingEach := &Condition[variable]{kind: KindEach, operands: []string{"i in c"}}
	attached := &Condition[variable]{kind: KindIf, operands: []string{"x"}}
	attached.materialize()

	cases := []struct {
		name    string
		pending *Condition[variable]
		next    Kind
		want    attachment
	}{
		{"no pending", nil, KindIf, attachNew},
		{"if then if", pendingIf, KindIf, attachMerge},
		{"elseif then if", pendingElseIf, KindIf, attachMerge},
		{"if then each", pendingIf, KindEach, attachNest},
		{"each then if", pendingEach, KindIf, attachNest},
		{"attached then if", attached, KindIf, attachNest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decide(tc.pending, tc.next))
		})
	}
}

func TestBuildersHaveNoSideEffects(t *testing.T) {
	root := Plain(v("x", "1"))
	_ = root.If().Equal("a", "b")
	_ = root.Each("i", "parameters.items")
	assert.Len(t, root.Children(), 1)
}

func TestMaterializeOnce(t *testing.T) {
	cond := If[variable]().Equal("a", "b")
	first := cond.Append(v("x", "1"))
	second := cond.Append(v("y", "2"))

	assert.Same(t, first, second)
	assert.Len(t, first.Children(), 2)
	assert.Same(t, first.Root(), cond.Parent())
}

func TestTopLevelConditionHasNoParentUntilAttached(t *testing.T) {
	cond := If[variable]().Equal("a", "b")
	assert.Nil(t, cond.Parent())
	assert.Equal(t, "eq(a, b)", cond.String())

	node := cond.Append(v("x", "1"))
	require.NotNil(t, node.Parent())
	assert.Equal(t, KindRoot, node.Parent().Kind())
}

func TestChainAfterElseIfMerges(t *testing.T) {
	ifNode := If[variable]().Equal("a", "b").Append(v("x", "1"))
	elseIf := ifNode.ElseIf().Equal("c", "d").If().Equal("e", "f").Append(v("y", "2"))

	assert.Equal(t, KindElseIf, elseIf.Kind())
	assert.Equal(t, "and(eq(c, d), eq(e, f))", elseIf.Condition())
	assert.Same(t, ifNode.Parent(), elseIf.Parent())
}

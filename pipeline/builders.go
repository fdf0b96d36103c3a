package pipeline

import (
	"github.com/goliatone/go-pipelines/conditioned"
)

// Typed entry points for conditional blocks in each section.

func IfVariable() *conditioned.IfBuilder[VariableBase] {
	return conditioned.If[VariableBase]()
}

func IfStage() *conditioned.IfBuilder[*Stage] {
	return conditioned.If[*Stage]()
}

func IfJob() *conditioned.IfBuilder[JobBase] {
	return conditioned.If[JobBase]()
}

func IfStep() *conditioned.IfBuilder[Step] {
	return conditioned.If[Step]()
}

func EachVariable(iterator, collection string) *conditioned.Condition[VariableBase] {
	return conditioned.Each[VariableBase](iterator, collection)
}

func EachStage(iterator, collection string) *conditioned.Condition[*Stage] {
	return conditioned.Each[*Stage](iterator, collection)
}

func EachJob(iterator, collection string) *conditioned.Condition[JobBase] {
	return conditioned.Each[JobBase](iterator, collection)
}

func EachStep(iterator, collection string) *conditioned.Condition[Step] {
	return conditioned.Each[Step](iterator, collection)
}

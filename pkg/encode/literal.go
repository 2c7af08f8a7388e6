package encode

import (
	"github.com/gitrdm/gofmb/pkg/fol"
	"github.com/gitrdm/gofmb/pkg/layout"
)

// literalAction classifies what a single flat literal does to the
// enclosing clause under one grounding (§4.2).
type literalAction int

const (
	// actionOmit means the literal is false under this grounding: drop it
	// from the emitted clause.
	actionOmit literalAction = iota
	// actionSkipClause means the literal is true under this grounding: the
	// whole clause is satisfied, skip emitting anything for it.
	actionSkipClause
	// actionEmit means the literal contributes a real SAT literal.
	actionEmit
)

// assignment is a grounding: assignment[i] is the value bound to vars[i] in
// the clause's variable order. valueOf finds a variable by a linear scan of
// vars, so the hot path does no map lookups.
type assignment struct {
	vars   []fol.VarID
	values []int
}

func (a assignment) valueOf(v fol.VarID) int {
	for i, vv := range a.vars {
		if vv == v {
			return a.values[i]
		}
	}
	panic("encode: variable not found in grounding; clause/variable mismatch")
}

// emitLiteral implements the §4.2 per-literal-kind rules. offsets supplies
// the variable-id blocks for functions and predicates.
func emitLiteral(l fol.Literal, a assignment, offsets *layout.Table) (literalAction, int64) {
	switch l.Kind {
	case fol.VarEq:
		eq := a.valueOf(l.X) == a.valueOf(l.Y)
		if l.Positive {
			if eq {
				return actionSkipClause, 0
			}
			return actionOmit, 0
		}
		if eq {
			return actionOmit, 0
		}
		return actionSkipClause, 0

	case fol.FuncEq:
		block := offsets.Functions[l.Func]
		tuple := make([]int, len(l.Args)+1)
		for i, arg := range l.Args {
			tuple[i] = a.valueOf(arg)
		}
		tuple[len(l.Args)] = a.valueOf(l.Result)
		id := block.VarID(tuple)
		if l.Positive {
			return actionEmit, id
		}
		return actionEmit, -id

	case fol.Pred:
		block := offsets.Predicates[l.Pred]
		tuple := make([]int, len(l.Args))
		for i, arg := range l.Args {
			tuple[i] = a.valueOf(arg)
		}
		id := block.VarID(tuple)
		if l.Positive {
			return actionEmit, id
		}
		return actionEmit, -id
	}
	panic("encode: unknown literal kind")
}

package encode

import (
	"context"

	"github.com/gitrdm/gofmb/pkg/fol"
	"github.com/gitrdm/gofmb/pkg/layout"
	"github.com/gitrdm/gofmb/pkg/markers"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// Instances enumerates every grounding of clause and, for each one that is
// not trivially satisfied, calls yield with the finished SAT clause
// (including the marker guard literals from §4.5). It returns early with
// yield's error, or with ctx.Err() if the context is cancelled between
// groundings.
func Instances(ctx context.Context, clause *fol.Clause, ss *sig.SortedSignature, offsets *layout.Table, ml *markers.Layout, yield func(lits []int64) error) error {
	if clause.TriviallySatisfiable() {
		return nil
	}

	vars := clause.VariablesInOrder()
	bounds := make([]int, len(vars))
	sourceSortOf := make([]int, len(vars))
	for i, v := range vars {
		s := clause.VarSort[v]
		sourceSortOf[i] = s
		bounds[i] = ss.EffectiveBound(s)
	}

	var callbackErr error
	checkEvery := 4096
	steps := 0

	EachGrounding(bounds, func(values []int) bool {
		steps++
		if steps%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				callbackErr = err
				return false
			}
		}

		a := assignment{vars: vars, values: values}

		satClause := make([]int64, 0, len(clause.Literals))
		skip := false
		for _, lit := range clause.Literals {
			action, id := emitLiteral(lit, a, offsets)
			switch action {
			case actionSkipClause:
				skip = true
			case actionEmit:
				satClause = append(satClause, id)
			}
			if skip {
				break
			}
		}
		if skip {
			return true
		}

		maxValUsed := make(map[int]int, len(vars))
		for i, s := range sourceSortOf {
			d := ss.VampireToDistinctParent[s]
			if v := values[i]; v > maxValUsed[d] {
				maxValUsed[d] = v
			}
		}
		satClause = append(satClause, ml.InstanceGuardLiterals(ss, maxValUsed)...)

		if err := yield(satClause); err != nil {
			callbackErr = err
			return false
		}
		return true
	})

	return callbackErr
}

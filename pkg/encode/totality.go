package encode

import (
	"context"

	"github.com/gitrdm/gofmb/pkg/layout"
	"github.com/gitrdm/gofmb/pkg/markers"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// TotalityAxioms emits the marker-guarded existence half of "every function
// is total" (§4.5). In Mode A (CONTOUR) it emits the full staircase, one
// clause per candidate result cardinality i in [1, size[resultSort]], each
// guarded by marker[resultDistinctSort][min(i-1,size-1)]; in Mode B
// (SBMEAM) the per-sort growth is tracked by the no-good learner instead, so
// only the single clause at the current size is emitted, guarded by
// ¬tot[resultDistinctSort].
func TotalityAxioms(ctx context.Context, ss *sig.SortedSignature, offsets *layout.Table, ml *markers.Layout, yield func(lits []int64) error) error {
	for fi, f := range ss.Sig.Functions {
		if f.Deleted {
			continue
		}
		block := offsets.Functions[fi]
		argSorts := f.Sig[:f.Arity]
		resultSort := f.Sig[f.Arity]
		distinctResult := ss.VampireToDistinctParent[resultSort]
		size := ss.DistinctSorts[distinctResult].Size

		argBounds := make([]int, len(argSorts))
		for i, s := range argSorts {
			argBounds[i] = ss.EffectiveBound(s)
		}

		cardinalities := []int{size}
		if ml.Mode == markers.ModeContour {
			cardinalities = make([]int, size)
			for i := range cardinalities {
				cardinalities[i] = i + 1
			}
		}

		var cbErr error
		EachGrounding(argBounds, func(xs []int) bool {
			if err := ctx.Err(); err != nil {
				cbErr = err
				return false
			}
			for _, i := range cardinalities {
				clause := make([]int64, 0, i+1)
				tuple := make([]int, len(xs)+1)
				copy(tuple, xs)
				for v := 1; v <= i; v++ {
					tuple[len(xs)] = v
					clause = append(clause, block.VarID(tuple))
				}
				clause = append(clause, ml.TotalityGuardLiteral(ss, distinctResult, i))
				if err := yield(clause); err != nil {
					cbErr = err
					return false
				}
			}
			return true
		})
		if cbErr != nil {
			return cbErr
		}
	}
	return nil
}

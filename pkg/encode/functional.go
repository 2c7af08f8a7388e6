package encode

import (
	"context"

	"github.com/gitrdm/gofmb/pkg/layout"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// FunctionalDefinitionAxioms emits §4.3: for every non-deleted function f of
// arity n, every pair of distinct result values (y,z) with y<z, and every
// argument tuple x̄: ¬(f(x̄)=y) ∨ ¬(f(x̄)=z). The symmetry filter y<z is
// applied by construction rather than generate-then-prune.
func FunctionalDefinitionAxioms(ctx context.Context, ss *sig.SortedSignature, offsets *layout.Table, yield func(lits []int64) error) error {
	for fi, f := range ss.Sig.Functions {
		if f.Deleted {
			continue
		}
		block := offsets.Functions[fi]
		argSorts := f.Sig[:f.Arity]
		resultSort := f.Sig[f.Arity]
		argBounds := make([]int, len(argSorts))
		for i, s := range argSorts {
			argBounds[i] = ss.EffectiveBound(s)
		}
		resultBound := ss.EffectiveBound(resultSort)

		var cbErr error
		EachGrounding(argBounds, func(xs []int) bool {
			if err := ctx.Err(); err != nil {
				cbErr = err
				return false
			}
			tuple := make([]int, len(xs)+1)
			copy(tuple, xs)
			for y := 1; y < resultBound; y++ {
				tuple[len(xs)] = y
				idY := block.VarID(tuple)
				for z := y + 1; z <= resultBound; z++ {
					tuple2 := make([]int, len(xs)+1)
					copy(tuple2, xs)
					tuple2[len(xs)] = z
					idZ := block.VarID(tuple2)
					if err := yield([]int64{-idY, -idZ}); err != nil {
						cbErr = err
						return false
					}
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

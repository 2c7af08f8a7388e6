package encode

import (
	"context"

	"github.com/gitrdm/gofmb/pkg/config"
	"github.com/gitrdm/gofmb/pkg/fol"
	"github.com/gitrdm/gofmb/pkg/layout"
	"github.com/gitrdm/gofmb/pkg/markers"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// Orderings caches, per distinct sort, the GroundedTerm sequence built in
// reset step 5 (§4.1) and the constants-only sub-sequence canonicity needs.
type Orderings struct {
	Terms     [][]GroundedTerm // indexed by distinct sort
	Constants [][]GroundedTerm // indexed by distinct sort, subsequence of Terms
}

// BuildOrderings recomputes the symmetry ordering for every distinct sort,
// sized to the sort's current size (restricted totality needs exactly that
// many terms; canonicity needs fewer, bounded by symmetryRatio).
func BuildOrderings(ss *sig.SortedSignature, cfg *config.Config) *Orderings {
	o := &Orderings{
		Terms:     make([][]GroundedTerm, len(ss.DistinctSorts)),
		Constants: make([][]GroundedTerm, len(ss.DistinctSorts)),
	}
	for s, d := range ss.DistinctSorts {
		o.Terms[s] = BuildOrdering(ss, s, cfg.WidgetOrders, d.Size)
		for _, t := range o.Terms[s] {
			if t.Args == nil {
				o.Constants[s] = append(o.Constants[s], t)
			}
		}
	}
	return o
}

// Emit produces the complete SAT clause set for one (size-vector, reset)
// epoch: per-clause instances (§4.2), functional-definition axioms (§4.3),
// totality axioms (§4.5), the Mode A staircase (§4.5) and the symmetry
// axioms (§4.4). Each clause is handed to yield in turn; yield's error (or
// ctx's) aborts the whole emission.
func Emit(ctx context.Context, problem *fol.Problem, ss *sig.SortedSignature, offsets *layout.Table, ml *markers.Layout, ord *Orderings, cfg *config.Config, yield func(lits []int64) error) error {
	for _, clause := range problem.Clauses {
		if err := Instances(ctx, clause, ss, offsets, ml, yield); err != nil {
			return err
		}
	}

	if err := FunctionalDefinitionAxioms(ctx, ss, offsets, yield); err != nil {
		return err
	}

	if err := TotalityAxioms(ctx, ss, offsets, ml, yield); err != nil {
		return err
	}

	for _, clause := range ml.StaircaseAxioms(ss) {
		if err := yield(clause); err != nil {
			return err
		}
	}

	for s, d := range ss.DistinctSorts {
		terms := ord.Terms[s]
		if clause := RestrictedTotalityAxiom(offsets, terms, d.Size); clause != nil {
			if err := yield(clause); err != nil {
				return err
			}
		}
		maxSize := d.Max
		if maxSize == sig.Unbounded {
			maxSize = d.Size
		}
		for _, clause := range CanonicityAxioms(offsets, ord.Constants[s], cfg.SymmetryRatio, maxSize, d.Size) {
			if err := yield(clause); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}

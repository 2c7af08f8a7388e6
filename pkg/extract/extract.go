// Package extract implements the model extractor (§4.7): once the SAT
// solver reports Sat, read the assignment back into the domain-level
// interpretation the report package prints.
package extract

import (
	"fmt"

	"github.com/gitrdm/gofmb/pkg/encode"
	"github.com/gitrdm/gofmb/pkg/errs"
	"github.com/gitrdm/gofmb/pkg/layout"
	"github.com/gitrdm/gofmb/pkg/markers"
	"github.com/gitrdm/gofmb/pkg/satface"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// Model is the finished finite-model witness: one array per distinct sort's
// size, plus every non-deleted symbol's interpretation and every deleted
// symbol's recovered value where its definition could be evaluated.
type Model struct {
	Sizes []int // per distinct sort, the size the model was found at

	Constants map[int]int            // function index -> value, arity-0 only
	Functions map[int]map[string]int // function index -> tuple key -> value, arity > 0
	Relations map[int]map[string]bool
	Propositions map[int]bool // predicate index -> truth, arity-0 only

	DeletedFunctions  map[int]int
	DeletedPredicates map[int]bool

	// Warnings aggregates every deleted symbol whose definition could not
	// be evaluated back to a value (§7 "Model-extraction partial": this is
	// diagnostic, never a reason to treat the model itself as invalid).
	Warnings error
}

// tupleKey renders an argument tuple as a stable map key.
func tupleKey(xs []int) string { return fmt.Sprint(xs) }

// Extract reads the current SAT assignment (solver.TrueInAssignment) into a
// Model. offsets and ml must be the ones just solved against; CONTOUR first
// retracts each sort's reported size to j+1, where j is the smallest index
// at which ¬marker[s][j] holds, per §4.7's parenthetical.
func Extract(ss *sig.SortedSignature, offsets *layout.Table, ml *markers.Layout, solver satface.Solver) *Model {
	m := &Model{
		Sizes:             effectiveSizes(ss, ml, solver),
		Constants:         make(map[int]int),
		Functions:         make(map[int]map[string]int),
		Relations:         make(map[int]map[string]bool),
		Propositions:      make(map[int]bool),
		DeletedFunctions:  make(map[int]int),
		DeletedPredicates: make(map[int]bool),
	}

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

		if f.Arity == 0 {
			if v := uniqueTrue(block, nil, resultBound, solver); v > 0 {
				m.Constants[fi] = v
			}
			continue
		}

		fm := make(map[string]int)
		encode.EachGrounding(argBounds, func(xs []int) bool {
			if v := uniqueTrue(block, xs, resultBound, solver); v > 0 {
				fm[tupleKey(xs)] = v
			}
			return true
		})
		m.Functions[fi] = fm
	}

	for pi, p := range ss.Sig.Predicates {
		if p.Deleted {
			continue
		}
		block := offsets.Predicates[pi]
		if p.Arity == 0 {
			m.Propositions[pi] = solver.TrueInAssignment(block.VarID(nil))
			continue
		}
		argBounds := make([]int, p.Arity)
		for i, s := range p.Sig {
			argBounds[i] = ss.EffectiveBound(s)
		}
		rel := make(map[string]bool)
		encode.EachGrounding(argBounds, func(xs []int) bool {
			rel[tupleKey(xs)] = solver.TrueInAssignment(block.VarID(xs))
			return true
		})
		m.Relations[pi] = rel
	}

	lookup := func(sourceSort, value int) int { return value }
	var recoveryFailures []error
	recordFailure := func(def *sig.DefinedSymbol) {
		recoveryFailures = append(recoveryFailures, fmt.Errorf("deleted symbol %q: definition did not evaluate to a value", def.Name))
	}
	for fi, def := range ss.DeletedFunctions {
		if v, ok := def.Eval(lookup); ok {
			m.DeletedFunctions[fi] = v
		} else {
			recordFailure(def)
		}
	}
	for pi, def := range ss.DeletedPredicates {
		if v, ok := def.Eval(lookup); ok {
			m.DeletedPredicates[pi] = v != 0
		} else {
			recordFailure(def)
		}
	}
	for pi, def := range ss.PartiallyDeletedPredicates {
		if v, ok := def.Eval(lookup); ok {
			m.DeletedPredicates[pi] = v != 0
		} else {
			recordFailure(def)
		}
	}
	for pi, def := range ss.TrivialPredicates {
		if v, ok := def.Eval(lookup); ok {
			m.DeletedPredicates[pi] = v != 0
		} else {
			recordFailure(def)
		}
	}
	m.Warnings = errs.Append(nil, recoveryFailures...)

	return m
}

// uniqueTrue finds the single result value in [1, resultBound] whose
// variable is true for the given argument tuple, returning 0 if none is
// (it should always be exactly one, given the totality axioms; 0 signals a
// solver inconsistency the caller does not try to recover from).
func uniqueTrue(block *layout.SymbolBlock, xs []int, resultBound int, solver satface.Solver) int {
	tuple := make([]int, len(xs)+1)
	copy(tuple, xs)
	for v := 1; v <= resultBound; v++ {
		tuple[len(xs)] = v
		if solver.TrueInAssignment(block.VarID(tuple)) {
			return v
		}
	}
	return 0
}

// effectiveSizes reports the size the model was actually found at per
// distinct sort. In Mode A, §4.7 requires retracting to the smallest j
// where ¬marker[s][j] holds. ¬marker[s][j] activates the totality clause
// for cardinality j+1, so every function result in that sort lies in
// 1..j+1 and the reported size is j+1 (one more than the index, not the
// index itself). If no marker is false the full size is reported. Mode B
// has no such retraction since totality is guarded by a single tot[s] flag
// with no per-cardinality structure.
func effectiveSizes(ss *sig.SortedSignature, ml *markers.Layout, solver satface.Solver) []int {
	sizes := make([]int, len(ss.DistinctSorts))
	for s, d := range ss.DistinctSorts {
		if ml.Mode != markers.ModeContour {
			sizes[s] = d.Size
			continue
		}
		k := d.Size
		for j := 0; j < d.Size; j++ {
			if !solver.TrueInAssignment(ml.ContourMarker(s, j)) {
				k = j + 1
				break
			}
		}
		sizes[s] = k
	}
	return sizes
}

package encode

import (
	"github.com/gitrdm/gofmb/pkg/config"
	"github.com/gitrdm/gofmb/pkg/layout"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// GroundedTerm is a symbol paired with a concrete argument tuple, used as
// an enumeration position for symmetry breaking (§4.4, GLOSSARY). Constants
// (arity 0) have a nil Args.
type GroundedTerm struct {
	Func int
	Args []int
}

// varIDAt returns the variable id of GroundedTerm g bound to value val.
func varIDAt(offsets *layout.Table, g GroundedTerm, val int) int64 {
	block := offsets.Functions[g.Func]
	tuple := make([]int, len(g.Args)+1)
	copy(tuple, g.Args)
	tuple[len(g.Args)] = val
	return block.VarID(tuple)
}

// constantsForSort returns, in declaration order, the arity-0 function
// indices whose result sort maps to distinctSort.
func constantsForSort(ss *sig.SortedSignature, distinctSort int) []int {
	var out []int
	for fi, f := range ss.Sig.Functions {
		if f.Deleted || f.Arity != 0 {
			continue
		}
		if ss.VampireToDistinctParent[f.Sig[0]] == distinctSort {
			out = append(out, fi)
		}
	}
	return out
}

// nonConstantFunctionsForSort returns, in declaration order, the
// positive-arity function indices whose result sort maps to distinctSort.
func nonConstantFunctionsForSort(ss *sig.SortedSignature, distinctSort int) []int {
	var out []int
	for fi, f := range ss.Sig.Functions {
		if f.Deleted || f.Arity == 0 {
			continue
		}
		if ss.VampireToDistinctParent[f.Sig[f.Arity]] == distinctSort {
			out = append(out, fi)
		}
	}
	return out
}

// uniformGrounding builds the m-th "chosen uniform grounding" of function f:
// slot j (argument index j, sort s_j) is bound to 1 + ((m + f + j) mod
// size(s_j)), generalising the diagonal formula in §4.4 to multi-argument
// functions by decorrelating slots with their position.
func uniformGrounding(ss *sig.SortedSignature, f, m int) GroundedTerm {
	fn := ss.Sig.Functions[f]
	args := make([]int, fn.Arity)
	for j := 0; j < fn.Arity; j++ {
		size := ss.EffectiveBound(fn.Sig[j])
		if size < 1 {
			size = 1
		}
		args[j] = 1 + ((m + f + j) % size)
	}
	return GroundedTerm{Func: f, Args: args}
}

// BuildOrdering constructs the ordered GroundedTerm sequence T_s for one
// distinct sort (§4.1 step 5): constants first, then chosen uniform
// groundings of result-sort-matching functions, interleaved per the
// requested WidgetOrder, until count terms are produced. When the sort has
// fewer than count constants and no positive-arity function lands in it,
// the returned slice is shorter than count; RestrictedTotalityAxiom then
// emits nothing for that sort.
func BuildOrdering(ss *sig.SortedSignature, distinctSort int, order config.WidgetOrder, count int) []GroundedTerm {
	terms := make([]GroundedTerm, 0, count)
	for _, ci := range constantsForSort(ss, distinctSort) {
		if len(terms) >= count {
			return terms
		}
		terms = append(terms, GroundedTerm{Func: ci})
	}
	if len(terms) >= count {
		return terms
	}

	funcs := nonConstantFunctionsForSort(ss, distinctSort)
	if len(funcs) == 0 {
		return terms
	}

	nf := len(funcs)
	remaining := count - len(terms)
	share := (remaining + nf - 1) / nf // ceil, used by OrderFunctionFirst

	switch order {
	case config.OrderArgumentFirst:
		// m varies slowest per function but fastest across functions: all
		// functions contribute their m-th grounding before any contributes
		// its (m+1)-th.
		for m := 0; len(terms) < count; m++ {
			for _, f := range funcs {
				if len(terms) >= count {
					break
				}
				terms = append(terms, uniformGrounding(ss, f, m))
			}
		}
	case config.OrderDiagonal:
		// §4.4's "1 + ((m + f) mod size)" family: position m takes grounding
		// m/nf of function funcs[m%nf], which yields the same sequence as
		// OrderArgumentFirst.
		for m := 0; len(terms) < count; m++ {
			f := funcs[m%nf]
			terms = append(terms, uniformGrounding(ss, f, m/nf))
		}
	default: // OrderFunctionFirst
		// each function contributes its full share of groundings before
		// the next function contributes any.
		for _, f := range funcs {
			for m := 0; m < share && len(terms) < count; m++ {
				terms = append(terms, uniformGrounding(ss, f, m))
			}
		}
	}
	return terms
}

// RestrictedTotalityAxiom emits §4.4's inductive n!-symmetry breaker: for
// the n-th GroundedTerm g = terms[n-1] (n = current size), (g=1)∨...∨(g=n).
func RestrictedTotalityAxiom(offsets *layout.Table, terms []GroundedTerm, n int) []int64 {
	if n < 1 || n > len(terms) {
		return nil
	}
	g := terms[n-1]
	clause := make([]int64, n)
	for val := 1; val <= n; val++ {
		clause[val-1] = varIDAt(offsets, g, val)
	}
	return clause
}

// CanonicityAxioms emits §4.4's canonical-introduction constraint over the
// constants-only sub-list of terms: for i in [1, w) and every j < i,
// ¬(constants[i]=n) ∨ (constants[j]=n-1), where w = min(symmetryRatio *
// maxSize, number of constants). Vacuous (no clauses) when n <= 1, since
// there is no predecessor value to require.
func CanonicityAxioms(offsets *layout.Table, constants []GroundedTerm, symmetryRatio float64, maxSize, n int) [][]int64 {
	if n <= 1 {
		return nil
	}
	w := int(symmetryRatio * float64(maxSize))
	if w > len(constants) {
		w = len(constants)
	}
	var clauses [][]int64
	for i := 1; i < w; i++ {
		idI := varIDAt(offsets, constants[i], n)
		for j := 0; j < i; j++ {
			idJ := varIDAt(offsets, constants[j], n-1)
			clauses = append(clauses, []int64{-idI, idJ})
		}
	}
	return clauses
}

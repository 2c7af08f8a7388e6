// Package sig holds the read-only sorted-signature view the encoder consumes:
// source sorts, their distinct-sort parents, function/predicate arities and
// signatures, and the deleted-symbol definitions the extractor recovers at
// the end of a run.
//
// Everything here is built once by preprocessing (sort inference, clique
// analysis, bounds propagation) and handed to the core as an immutable
// value; during a run the core mutates DistinctSort fields only: the
// enumerator grows each current Size between solve attempts, and before the
// first attempt ResolveEPRSorts and CloseSizeConstraints may set Min (and,
// for EPR sorts, Max).
package sig

import "math"

// Unbounded marks a distinct sort's Max (or a SourceSort's Bound) as having
// no finite ceiling.
const Unbounded = math.MaxInt32

// FuncSymbol describes one function symbol. Sig has length Arity+1: the
// first Arity entries are the argument sorts (source-sort indices), the
// last is the result sort.
type FuncSymbol struct {
	Name    string
	Arity   int
	Sig     []int // len == Arity+1, source-sort indices, last is result sort
	Deleted bool
	UsageCnt int
}

// PredSymbol describes one predicate symbol. Sig has length Arity, all
// argument sorts. Equality is never represented here: it is inlined as a
// two-variable-equality literal kind in package fol.
type PredSymbol struct {
	Name     string
	Arity    int
	Sig      []int // len == Arity
	Deleted  bool
	UsageCnt int
}

// Signature is the symbol table handed down from preprocessing, read-only
// for the lifetime of the core.
type Signature struct {
	Functions  []*FuncSymbol
	Predicates []*PredSymbol
}

// SourceSort is a sort as it appears in the original (pre-sort-inference)
// problem.
type SourceSort struct {
	Name   string
	Bound  int // sortBound; Unbounded if none
	Parent int // index into SortedSignature.DistinctSorts
}

// DistinctSort is an equivalence class of source sorts produced by sort
// inference. The enumerator mutates Size during search; ResolveEPRSorts and
// CloseSizeConstraints may adjust Min and Max once before the search
// starts. Name and Monotonic are fixed at construction.
type DistinctSort struct {
	Name      string
	Min       int
	Max       int // Unbounded if none
	Size      int // current candidate size during search
	Monotonic bool
}

// DefinedSymbol is the stored defining literal/unit for a deleted symbol,
// evaluated by the extractor (§4.7) once the rest of the interpretation is
// known. The definition itself is opaque to the core: Eval, supplied by the
// caller that owns the symbol's semantics, evaluates it.
type DefinedSymbol struct {
	Name string
	Eval func(lookup func(sourceSort, value int) int) (result int, ok bool)
}

// SortedSignature is the full read-only view the core consumes. Field names
// follow §6; Vampire-flavoured field names are kept (VampireToDistinctParent)
// because that is literally the name preprocessing hands the core under.
type SortedSignature struct {
	Sig *Signature

	SourceSorts   []*SourceSort
	DistinctSorts []*DistinctSort

	SortBounds     []int // per source sort, mirrors SourceSorts[i].Bound
	MonotonicSorts []bool // per distinct sort, mirrors DistinctSorts[i].Monotonic

	FunctionSignatures [][]int // per function, == Sig.Functions[i].Sig
	PredicateSignatures [][]int

	SortedConstants map[int][]int // source sort -> arity-0 function indices
	SortedFunctions map[int][]int // source sort (of result) -> function indices

	// VarEqSorts maps a distinct sort to the synthetic "special sort" used
	// for two-variable equalities whose variables are otherwise
	// unconstrained (§3 Clauses).
	VarEqSorts map[int]int

	VampireToDistinctParent []int // source sort index -> distinct sort index

	// Distinct-sort size constraints, closed under fixpoint by the
	// enumerator (§9 open question i): NonStrict holds (a,b) meaning
	// size[a] >= size[b]; Strict holds (a,b) meaning size[a] > size[b].
	NonStrict []SizeConstraint
	Strict    []SizeConstraint

	DeletedFunctions           map[int]*DefinedSymbol
	DeletedPredicates          map[int]*DefinedSymbol
	PartiallyDeletedPredicates map[int]*DefinedSymbol
	TrivialPredicates          map[int]*DefinedSymbol
}

// SizeConstraint records a pairwise relation between two distinct sorts'
// current sizes.
type SizeConstraint struct {
	A, B int // distinct sort indices
}

// SizeOf returns the current size of the distinct sort a source sort maps
// to.
func (ss *SortedSignature) SizeOf(sourceSort int) int {
	return ss.DistinctSorts[ss.VampireToDistinctParent[sourceSort]].Size
}

// EffectiveBound returns the per-variable grounding bound for a source
// sort: the current size of its distinct parent, clamped by any sortBound
// sort inference attached directly to the source sort (§4.2 tie-break).
func (ss *SortedSignature) EffectiveBound(sourceSort int) int {
	size := ss.SizeOf(sourceSort)
	if b := ss.SourceSorts[sourceSort].Bound; b < size {
		return b
	}
	return size
}

// ResolveEPRSorts implements §9 open question (ii): a distinct sort with no
// constants and an unset (zero) size range is not skipped, it is pinned to
// min = max = size = 1.
func (ss *SortedSignature) ResolveEPRSorts() {
	hasConstant := make([]bool, len(ss.DistinctSorts))
	for src, funcs := range ss.SortedConstants {
		if len(funcs) == 0 {
			continue
		}
		d := ss.VampireToDistinctParent[src]
		hasConstant[d] = true
	}
	for i, d := range ss.DistinctSorts {
		if d.Min == 0 && d.Max == 0 && !hasConstant[i] {
			d.Min, d.Max, d.Size = 1, 1, 1
		}
	}
}

// CloseSizeConstraints applies both the non-strict and the strict
// distinct-sort constraint families until fixpoint (§9 open question i).
// It mutates DistinctSorts[*].Min in place: each pass tightens a lower
// bound implied by another sort's current minimum, and is safe to call
// repeatedly.
func (ss *SortedSignature) CloseSizeConstraints() {
	for {
		changed := false
		for _, c := range ss.NonStrict {
			// size[A] >= size[B]
			if ss.DistinctSorts[c.A].Min < ss.DistinctSorts[c.B].Min {
				ss.DistinctSorts[c.A].Min = ss.DistinctSorts[c.B].Min
				changed = true
			}
		}
		for _, c := range ss.Strict {
			// size[A] > size[B]
			need := ss.DistinctSorts[c.B].Min + 1
			if ss.DistinctSorts[c.A].Min < need {
				ss.DistinctSorts[c.A].Min = need
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// SatisfiesSizeVector reports whether setting distinct sort idx to newSize
// stays within that sort's own Min and Max. Cross-sort NonStrict/Strict
// relations are not checked here; SatisfiesDistinctSortConstraints does
// that for a whole candidate vector.
func (ss *SortedSignature) SatisfiesSizeVector(idx, newSize int) bool {
	if newSize < ss.DistinctSorts[idx].Min {
		return false
	}
	if ss.DistinctSorts[idx].Max != Unbounded && newSize > ss.DistinctSorts[idx].Max {
		return false
	}
	return true
}

// SatisfiesDistinctSortConstraints reports whether a full candidate size
// vector (indexed by distinct sort) honors every recorded NonStrict/Strict
// relation. Mode B's candidate generator must reject any candidate that
// violates one of these in addition to rejecting candidates that match a
// retained no-good (§4.6 Mode B).
func (ss *SortedSignature) SatisfiesDistinctSortConstraints(candidate []int) bool {
	for _, c := range ss.NonStrict {
		if candidate[c.A] < candidate[c.B] {
			return false
		}
	}
	for _, c := range ss.Strict {
		if candidate[c.A] <= candidate[c.B] {
			return false
		}
	}
	return true
}

// PropagateSizeGrowth closes the NonStrict/Strict distinct-sort
// constraints under fixpoint against the live Size vector (§4.6 Mode A):
// growing one sort can force another sort to grow too. This is distinct
// from CloseSizeConstraints, which only tightens the static Min floor
// computed once at init and never touches Size directly.
func (ss *SortedSignature) PropagateSizeGrowth() {
	for {
		changed := false
		for _, c := range ss.NonStrict {
			if ss.DistinctSorts[c.A].Size < ss.DistinctSorts[c.B].Size {
				ss.DistinctSorts[c.A].Size = ss.DistinctSorts[c.B].Size
				changed = true
			}
		}
		for _, c := range ss.Strict {
			need := ss.DistinctSorts[c.B].Size + 1
			if ss.DistinctSorts[c.A].Size < need {
				ss.DistinctSorts[c.A].Size = need
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// Package layout builds the SAT variable offset table described in §3 "SAT
// variable space" and §4.1 "reset": a single contiguous 1-based id range
// covering every non-deleted function block, every non-deleted predicate
// block, and the marker region appended by package markers.
//
// The table is rebuilt from scratch on every reset and is otherwise
// read-only: the encoder looks variable ids up in it but never mutates it.
package layout

import (
	"sort"

	"github.com/gitrdm/gofmb/pkg/errs"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// VarMax bounds the SAT id space, matching a 32-bit solver's signed id
// capacity (§3, §5).
const VarMax int64 = (1 << 31) - 1

// SymbolBlock describes one function or predicate's contiguous id block:
// Offset is the id of tuple-index 0, SlotSizes holds each slot's current
// domain size in order (arguments then, for functions, the result), and
// Place holds the matching mixed-radix place value for each slot
// (Place[0] == 1, Place[i] == Place[i-1]*SlotSizes[i-1]).
type SymbolBlock struct {
	Offset    int64
	SlotSizes []int64
	Place     []int64
	Size      int64 // total block size == product of SlotSizes
}

// VarID computes the mixed-radix id for a tuple of 1-based slot values,
// per the formula in §3: varId = offset + sum (value[i]-1)*place[i].
func (b *SymbolBlock) VarID(values []int) int64 {
	id := b.Offset
	for i, v := range values {
		id += int64(v-1) * b.Place[i]
	}
	return id
}

// Table is the full rebuilt offset table for one (size-vector, reset)
// epoch.
type Table struct {
	Functions []*SymbolBlock // indexed by function symbol index; nil if deleted
	Predicates []*SymbolBlock // indexed by predicate symbol index; nil if deleted
	FuncOrder  []int          // symbol order used to assign function offsets
	PredOrder  []int

	NextFree int64 // first unused id after functions+predicates, where markers begin
}

// checkedMul multiplies a and b, reporting overflow against VarMax rather
// than wrapping (§3 "an implementer MUST check multiplicative overflow at
// each step").
func checkedMul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	p := a * b
	if p/a != b || p > VarMax {
		return 0, true
	}
	return p, false
}

func checkedAdd(a, b int64) (int64, bool) {
	s := a + b
	if s < a || s > VarMax {
		return 0, true
	}
	return s, false
}

// symbolOrderFunctions returns function indices in the configured walk
// order. OrderOccurrence is signature-declaration order (the identity
// permutation); OrderUsage and OrderPreprocessedUsage sort by descending
// UsageCnt, ties broken by occurrence, so that heavily used symbols get the
// low, cache-friendlier offsets.
func symbolOrderFunctions(ss *sig.SortedSignature, byUsage bool) []int {
	n := len(ss.Sig.Functions)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if !byUsage {
		return order
	}
	sort.SliceStable(order, func(i, j int) bool {
		return ss.Sig.Functions[order[i]].UsageCnt > ss.Sig.Functions[order[j]].UsageCnt
	})
	return order
}

func symbolOrderPredicates(ss *sig.SortedSignature, byUsage bool) []int {
	n := len(ss.Sig.Predicates)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if !byUsage {
		return order
	}
	sort.SliceStable(order, func(i, j int) bool {
		return ss.Sig.Predicates[order[i]].UsageCnt > ss.Sig.Predicates[order[j]].UsageCnt
	})
	return order
}

// Build walks every non-deleted function then every non-deleted predicate
// in the requested symbol order, assigning each a contiguous block sized to
// the product of its slots' current domain sizes. It returns *errs.CannotEncode
// without allocating anything further when any block, or the running
// offset, would overflow VarMax.
func Build(ss *sig.SortedSignature, byUsage bool) (*Table, error) {
	t := &Table{
		Functions: make([]*SymbolBlock, len(ss.Sig.Functions)),
		Predicates: make([]*SymbolBlock, len(ss.Sig.Predicates)),
	}

	next := int64(1)

	t.FuncOrder = symbolOrderFunctions(ss, byUsage)
	for _, fi := range t.FuncOrder {
		f := ss.Sig.Functions[fi]
		if f.Deleted {
			continue
		}
		block, n, overflow := buildBlock(ss, f.Sig, next)
		if overflow {
			return nil, &errs.CannotEncode{Symbol: f.Name, Reason: "function block exceeds SAT id capacity"}
		}
		t.Functions[fi] = block
		next = n
	}

	t.PredOrder = symbolOrderPredicates(ss, byUsage)
	for _, pi := range t.PredOrder {
		p := ss.Sig.Predicates[pi]
		if p.Deleted {
			continue
		}
		block, n, overflow := buildBlock(ss, p.Sig, next)
		if overflow {
			return nil, &errs.CannotEncode{Symbol: p.Name, Reason: "predicate block exceeds SAT id capacity"}
		}
		t.Predicates[pi] = block
		next = n
	}

	t.NextFree = next
	return t, nil
}

// buildBlock computes the mixed-radix layout for one symbol's slots
// (argument source sorts, in order, plus for functions a trailing result
// sort) starting at offset, returning the block and the next free id.
func buildBlock(ss *sig.SortedSignature, slotSorts []int, offset int64) (*SymbolBlock, int64, bool) {
	slots := make([]int64, len(slotSorts))
	place := make([]int64, len(slotSorts))
	size := int64(1)
	for i, s := range slotSorts {
		slots[i] = int64(ss.EffectiveBound(s))
		place[i] = size
		var overflow bool
		size, overflow = checkedMul(size, slots[i])
		if overflow {
			return nil, 0, true
		}
	}
	next, overflow := checkedAdd(offset, size)
	if overflow {
		return nil, 0, true
	}
	return &SymbolBlock{Offset: offset, SlotSizes: slots, Place: place, Size: size}, next, false
}

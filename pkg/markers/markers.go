// Package markers implements the marker-assumption manager (§4.5): the two
// mechanisms ("CONTOUR" per-sort staircases, "SBMEAM" totality/instance
// flags) that let the driver re-solve the same clause set at a growing
// sequence of candidate domain sizes without rebuilding the SAT solver.
package markers

import (
	"github.com/gitrdm/gofmb/pkg/errs"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// Mode selects which marker scheme the current run uses.
type Mode int

const (
	ModeContour Mode = iota
	ModeSBMEAM
)

// VarMax mirrors layout.VarMax; duplicated here (rather than imported) so
// that neither package depends on the other. The caller places the marker
// region after layout's symbol blocks by passing layout's NextFree to
// Build.
const VarMax int64 = (1 << 31) - 1

// Layout is the marker region appended after the function and predicate
// blocks (§3 step 4).
type Layout struct {
	Mode Mode

	// Mode A: ContourBase[s] is the id of marker[s][0]; sort s reserves
	// size[s] contiguous ids.
	ContourBase []int64

	// Mode B: one id each.
	TotVar  []int64
	InstVar []int64

	Count int64 // total ids reserved by the marker region
}

func checkedAdd(a, b int64) (int64, bool) {
	s := a + b
	if s < a || s > VarMax {
		return 0, true
	}
	return s, false
}

// Build reserves the marker region starting at id `next`, returning the
// layout and the first free id after it.
func Build(mode Mode, ss *sig.SortedSignature, next int64) (*Layout, int64, error) {
	n := len(ss.DistinctSorts)
	l := &Layout{Mode: mode}
	start := next

	switch mode {
	case ModeContour:
		l.ContourBase = make([]int64, n)
		for s, d := range ss.DistinctSorts {
			l.ContourBase[s] = next
			size := int64(d.Size)
			if size < 1 {
				size = 1
			}
			var overflow bool
			next, overflow = checkedAdd(next, size)
			if overflow {
				return nil, 0, &errs.CannotEncode{Symbol: "<markers>", Reason: "contour marker region exceeds SAT id capacity"}
			}
		}
	case ModeSBMEAM:
		l.TotVar = make([]int64, n)
		l.InstVar = make([]int64, n)
		for s := range ss.DistinctSorts {
			l.TotVar[s] = next
			var overflow bool
			next, overflow = checkedAdd(next, 1)
			if overflow {
				return nil, 0, &errs.CannotEncode{Symbol: "<markers>", Reason: "sbmeam marker region exceeds SAT id capacity"}
			}
			l.InstVar[s] = next
			next, overflow = checkedAdd(next, 1)
			if overflow {
				return nil, 0, &errs.CannotEncode{Symbol: "<markers>", Reason: "sbmeam marker region exceeds SAT id capacity"}
			}
		}
	}

	l.Count = next - start
	return l, next, nil
}

// ContourMarker returns the variable id of marker[s][j] in Mode A.
func (l *Layout) ContourMarker(distinctSort, j int) int64 {
	return l.ContourBase[distinctSort] + int64(j)
}

// Tot returns the variable id of tot[s] in Mode B.
func (l *Layout) Tot(distinctSort int) int64 { return l.TotVar[distinctSort] }

// Inst returns the variable id of inst[s] in Mode B.
func (l *Layout) Inst(distinctSort int) int64 { return l.InstVar[distinctSort] }

// StaircaseAxioms emits the Mode A staircase clauses: for every sort s and
// j in [0, size[s]-2], ¬marker[s][j+1] ∨ marker[s][j]. Each clause is
// returned as a slice of signed literal ids (negative = negated).
func (l *Layout) StaircaseAxioms(ss *sig.SortedSignature) [][]int64 {
	if l.Mode != ModeContour {
		return nil
	}
	var clauses [][]int64
	for s, d := range ss.DistinctSorts {
		for j := 0; j <= d.Size-2; j++ {
			clauses = append(clauses, []int64{
				-l.ContourMarker(s, j+1),
				l.ContourMarker(s, j),
			})
		}
	}
	return clauses
}

// Assumptions returns the assumption literal set the driver feeds to the
// SAT solver for one solve at the current size vector (§4.5 "Solver
// assumption per query").
func (l *Layout) Assumptions(ss *sig.SortedSignature) []int64 {
	n := len(ss.DistinctSorts)
	lits := make([]int64, 0, n*2)
	switch l.Mode {
	case ModeContour:
		for s, d := range ss.DistinctSorts {
			lits = append(lits, -l.ContourMarker(s, d.Size-1))
		}
	case ModeSBMEAM:
		for s := range ss.DistinctSorts {
			lits = append(lits, l.Tot(s), l.Inst(s))
		}
	}
	return lits
}

// InstanceGuardLiterals returns the extra literals an emitted instance
// (§4.2) must carry for every non-monotonic distinct sort it mentions,
// given the maximum value used for that sort within this particular
// grounding. In Mode A this is ¬marker[sort][maxValUsed-2] (omitted when
// maxValUsed <= 1, since the instance is then always active); in Mode B it
// is ¬inst[sort].
func (l *Layout) InstanceGuardLiterals(ss *sig.SortedSignature, maxValUsedPerSort map[int]int) []int64 {
	var extra []int64
	for s, maxVal := range maxValUsedPerSort {
		if ss.DistinctSorts[s].Monotonic {
			continue
		}
		switch l.Mode {
		case ModeContour:
			if maxVal > 1 {
				extra = append(extra, -l.ContourMarker(s, maxVal-2))
			}
		case ModeSBMEAM:
			extra = append(extra, -l.Inst(s))
		}
	}
	return extra
}

// TotalityGuardLiteral returns the literal a totality clause for result
// sort `s` and candidate cardinality `i` must carry (functional-definition
// clauses carry no guard).
// In Mode A this is marker[s][min(i-1, size[s]-1)] (§4.5: "use the largest
// marker for the top version"); in Mode B it is ¬tot[s].
func (l *Layout) TotalityGuardLiteral(ss *sig.SortedSignature, distinctSort, candidateCardinality int) int64 {
	switch l.Mode {
	case ModeContour:
		size := ss.DistinctSorts[distinctSort].Size
		m := candidateCardinality - 1
		if m > size-1 {
			m = size - 1
		}
		return l.ContourMarker(distinctSort, m)
	default: // ModeSBMEAM
		return -l.Tot(distinctSort)
	}
}

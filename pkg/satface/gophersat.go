package satface

import (
	"math/rand"

	"github.com/crillab/gophersat/solver"
	"github.com/hashicorp/go-hclog"
)

// GophersatAdapter grounds Solver on github.com/crillab/gophersat/solver.
// gophersat has no incremental-assertion API in its embeddable surface: a
// fresh solver.Problem is built from the accumulated clauses plus the unit
// assumption clauses on every SolveUnderAssumptions call, matching the §4.6
// state machine's "rebuild on every epoch" contract rather than fighting it.
type GophersatAdapter struct {
	logger   hclog.Logger
	varCount int64
	clauses  [][]int

	lastAssumptions []Lit
	lastStatus      Status
	model           []bool

	rng *rand.Rand
}

// NewGophersatAdapter constructs an adapter with no clauses and no variables.
func NewGophersatAdapter(logger hclog.Logger) *GophersatAdapter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GophersatAdapter{
		logger: logger.Named("satface.gophersat"),
		rng:    rand.New(rand.NewSource(1)),
	}
}

func (a *GophersatAdapter) EnsureVarCount(n int64) {
	if n > a.varCount {
		a.varCount = n
	}
}

func (a *GophersatAdapter) AddClause(lits []Lit) error {
	ints := make([]int, len(lits))
	for i, l := range lits {
		ints[i] = int(l)
		if abs64(l) > a.varCount {
			a.varCount = abs64(l)
		}
	}
	a.clauses = append(a.clauses, ints)
	return nil
}

func (a *GophersatAdapter) SolveUnderAssumptions(assumptions []Lit) (Status, error) {
	all := make([][]int, 0, len(a.clauses)+len(assumptions))
	all = append(all, a.clauses...)
	for _, lit := range assumptions {
		all = append(all, []int{int(lit)})
		if abs64(lit) > a.varCount {
			a.varCount = abs64(lit)
		}
	}

	pb := solver.ParseSlice(all)
	s := solver.New(pb)

	status := s.Solve()
	a.lastAssumptions = assumptions

	switch status {
	case solver.Sat:
		a.model = s.Model()
		a.lastStatus = StatusSat
		return StatusSat, nil
	case solver.Unsat:
		a.model = nil
		a.lastStatus = StatusUnsat
		return StatusUnsat, nil
	default:
		a.lastStatus = StatusUnknown
		return StatusUnknown, nil
	}
}

// FailedAssumptions conservatively returns the whole assumption vector
// passed to the last SolveUnderAssumptions call: gophersat's embeddable
// Problem/Solver API (solver.New, (*Solver).Solve, (*Solver).Model) exposes
// no finer-grained unsat-core or failed-literal extraction, so every
// assumption is treated as having potentially participated in the
// refutation. See DESIGN.md for why this is sound for every caller in this
// module (the enumerators in pkg/enumerate treat the returned set as a
// superset of the real core, so every sort then counts as failed).
func (a *GophersatAdapter) FailedAssumptions() []Lit {
	if a.lastStatus != StatusUnsat {
		return nil
	}
	out := make([]Lit, len(a.lastAssumptions))
	copy(out, a.lastAssumptions)
	return out
}

func (a *GophersatAdapter) TrueInAssignment(lit Lit) bool {
	if a.lastStatus != StatusSat || a.model == nil {
		return false
	}
	v := lit
	neg := v < 0
	if neg {
		v = -v
	}
	idx := int(v) - 1
	if idx < 0 || idx >= len(a.model) {
		return false
	}
	if neg {
		return !a.model[idx]
	}
	return a.model[idx]
}

// RandomizeForNextAssignment reseeds the adapter's own PRNG. gophersat's
// embeddable Problem/Solver API exposes no branching-order or polarity hook
// to perturb, so this is a documented no-op on the solve itself. The
// reseeded PRNG is private to the adapter and nothing reads it.
func (a *GophersatAdapter) RandomizeForNextAssignment(seed int64) {
	a.rng = rand.New(rand.NewSource(seed))
}

func (a *GophersatAdapter) Reset() {
	a.clauses = nil
	a.varCount = 0
	a.model = nil
	a.lastAssumptions = nil
	a.lastStatus = StatusUnknown
	a.logger.Trace("solver reset")
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

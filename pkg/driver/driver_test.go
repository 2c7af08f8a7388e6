package driver

import (
	"context"
	"testing"

	"github.com/gitrdm/gofmb/pkg/config"
	"github.com/gitrdm/gofmb/pkg/enumerate"
	"github.com/gitrdm/gofmb/pkg/fol"
	"github.com/gitrdm/gofmb/pkg/satface"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// bruteForceSolver is a tiny brute-force satface.Solver used only to
// exercise the driver's wiring end to end without depending on a real SAT
// backend: it tries every assignment up to its var count, which is only
// ever asked to do so for the small literal-input scenarios in this file.
type bruteForceSolver struct {
	varCount int64
	clauses  [][]int64
	model    []bool // model[0] unused; 1-based
	lastAsm  []satface.Lit
}

func (s *bruteForceSolver) EnsureVarCount(n int64) {
	if n > s.varCount {
		s.varCount = n
	}
}

func (s *bruteForceSolver) AddClause(lits []satface.Lit) error {
	cp := make([]int64, len(lits))
	copy(cp, lits)
	s.clauses = append(s.clauses, cp)
	for _, l := range lits {
		v := l
		if v < 0 {
			v = -v
		}
		if v > s.varCount {
			s.varCount = v
		}
	}
	return nil
}

func (s *bruteForceSolver) SolveUnderAssumptions(assumptions []satface.Lit) (satface.Status, error) {
	s.lastAsm = assumptions
	n := int(s.varCount)
	total := 1 << uint(n)
	for bits := 0; bits < total; bits++ {
		assign := make([]bool, n+1)
		for i := 1; i <= n; i++ {
			assign[i] = bits&(1<<uint(i-1)) != 0
		}
		if satisfies(assign, s.clauses) && satisfies(assign, litsAsClauses(assumptions)) {
			s.model = assign
			return satface.StatusSat, nil
		}
	}
	return satface.StatusUnsat, nil
}

func litsAsClauses(lits []satface.Lit) [][]int64 {
	out := make([][]int64, len(lits))
	for i, l := range lits {
		out[i] = []int64{l}
	}
	return out
}

func satisfies(assign []bool, clauses [][]int64) bool {
	for _, c := range clauses {
		ok := false
		for _, l := range c {
			v := l
			neg := v < 0
			if neg {
				v = -v
			}
			if assign[v] != neg {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func (s *bruteForceSolver) FailedAssumptions() []satface.Lit { return s.lastAsm }

func (s *bruteForceSolver) TrueInAssignment(lit satface.Lit) bool {
	v := lit
	neg := v < 0
	if neg {
		v = -v
	}
	if int(v) >= len(s.model) {
		return false
	}
	return s.model[v] != neg
}

func (s *bruteForceSolver) RandomizeForNextAssignment(int64) {}

func (s *bruteForceSolver) Reset() {
	s.varCount = 0
	s.clauses = nil
	s.model = nil
}

func propositionalSig() *sig.SortedSignature {
	return &sig.SortedSignature{
		Sig: &sig.Signature{
			Predicates: []*sig.PredSymbol{{Name: "p", Arity: 0, Sig: []int{}}},
		},
		SortedConstants: map[int][]int{},
	}
}

func TestRunPropositionalUnsat(t *testing.T) {
	ss := propositionalSig()
	problem := &fol.Problem{
		Clauses: []*fol.Clause{
			{Literals: []fol.Literal{{Kind: fol.Pred, Positive: true, Pred: 0}}, VarSort: map[fol.VarID]int{}},
			{Literals: []fol.Literal{{Kind: fol.Pred, Positive: false, Pred: 0}}, VarSort: map[fol.VarID]int{}},
		},
	}
	cfg := config.New(config.WithStartSize(1))
	strategy, err := enumerate.New(cfg)
	if err != nil {
		t.Fatalf("enumerate.New: %v", err)
	}
	solver := &bruteForceSolver{}

	result, err := Run(context.Background(), problem, ss, cfg, solver, strategy, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != StatusRefutation {
		t.Fatalf("Status = %v, want %v (p and -p is unsatisfiable at every domain size)", result.Status, StatusRefutation)
	}
}

func unaryConstantIdentitySig() *sig.SortedSignature {
	return &sig.SortedSignature{
		Sig: &sig.Signature{
			Functions: []*sig.FuncSymbol{
				{Name: "a", Arity: 0, Sig: []int{0}},
				{Name: "b", Arity: 0, Sig: []int{0}},
			},
		},
		SourceSorts:             []*sig.SourceSort{{Name: "sigma", Bound: sig.Unbounded, Parent: 0}},
		DistinctSorts:           []*sig.DistinctSort{{Name: "sigma", Min: 1, Max: sig.Unbounded, Size: 1}},
		VampireToDistinctParent: []int{0},
		SortedConstants:         map[int][]int{0: {0, 1}},
	}
}

func TestRunUnaryConstantIdentityGrowsToSizeTwo(t *testing.T) {
	ss := unaryConstantIdentitySig()
	// a != b, flattened the way §3 represents it: "if a=X and b=Y then
	// X != Y" as a disjunction of its negation, universally grounded over
	// the two result variables X and Y.
	problem := &fol.Problem{
		Clauses: []*fol.Clause{
			{
				Literals: []fol.Literal{
					{Kind: fol.FuncEq, Positive: false, Func: 0, Args: nil, Result: 0},
					{Kind: fol.FuncEq, Positive: false, Func: 1, Args: nil, Result: 1},
					{Kind: fol.VarEq, Positive: false, X: 0, Y: 1},
				},
				VarSort: map[fol.VarID]int{0: 0, 1: 0},
			},
		},
	}
	cfg := config.New(config.WithStartSize(1))
	strategy, err := enumerate.New(cfg)
	if err != nil {
		t.Fatalf("enumerate.New: %v", err)
	}
	solver := &bruteForceSolver{}

	result, err := Run(context.Background(), problem, ss, cfg, solver, strategy, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != StatusSatisfiable {
		t.Fatalf("Status = %v, want %v", result.Status, StatusSatisfiable)
	}
	if result.Model == nil {
		t.Fatal("expected a non-nil model on SATISFIABLE")
	}
	if result.Model.Constants[0] == result.Model.Constants[1] {
		t.Fatalf("a and b must take distinct values, got a=%d b=%d", result.Model.Constants[0], result.Model.Constants[1])
	}
}

func TestRunInappropriateRejectsWithoutSolving(t *testing.T) {
	ss := propositionalSig()
	problem := &fol.Problem{KnownInfiniteDomain: true}
	cfg := config.Default()
	strategy, _ := enumerate.New(cfg)
	solver := &bruteForceSolver{}

	result, err := Run(context.Background(), problem, ss, cfg, solver, strategy, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != StatusInappropriate {
		t.Fatalf("Status = %v, want %v", result.Status, StatusInappropriate)
	}
	if len(solver.clauses) != 0 {
		t.Fatal("an inappropriate problem must never reach the SAT solver")
	}
}

func TestRunCannotEncodeReportsRefutationNotFound(t *testing.T) {
	// A unary function over a sort this large overflows the SAT id space
	// (§3's checked-multiply capacity check) on the very first epoch, before
	// any clause reaches the solver.
	ss := &sig.SortedSignature{
		Sig: &sig.Signature{
			Functions: []*sig.FuncSymbol{{Name: "f", Arity: 1, Sig: []int{0, 0}}},
		},
		SourceSorts:             []*sig.SourceSort{{Name: "sigma", Bound: sig.Unbounded, Parent: 0}},
		DistinctSorts:           []*sig.DistinctSort{{Name: "sigma", Min: 1, Max: sig.Unbounded, Size: 1 << 40}},
		VampireToDistinctParent: []int{0},
		SortedConstants:         map[int][]int{},
	}
	problem := &fol.Problem{}
	cfg := config.New(config.WithStartSize(1 << 40))
	strategy, err := enumerate.New(cfg)
	if err != nil {
		t.Fatalf("enumerate.New: %v", err)
	}
	solver := &bruteForceSolver{}

	result, err := Run(context.Background(), problem, ss, cfg, solver, strategy, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != StatusRefutationNotFound {
		t.Fatalf("Status = %v, want %v (cannot-encode must never report a genuine refutation)", result.Status, StatusRefutationNotFound)
	}
	if len(solver.clauses) != 0 {
		t.Fatal("a cannot-encode abort must never reach the SAT solver")
	}
}

func TestRunGroundRefutationShortCircuits(t *testing.T) {
	ss := propositionalSig()
	problem := &fol.Problem{
		Clauses: []*fol.Clause{
			{Literals: []fol.Literal{{Kind: fol.VarEq, Positive: false, X: 0, Y: 0}}, VarSort: map[fol.VarID]int{}},
		},
	}
	cfg := config.Default()
	strategy, _ := enumerate.New(cfg)
	solver := &bruteForceSolver{}

	result, err := Run(context.Background(), problem, ss, cfg, solver, strategy, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != StatusRefutation {
		t.Fatalf("Status = %v, want %v", result.Status, StatusRefutation)
	}
	if len(solver.clauses) != 0 {
		t.Fatal("a ground refutation must never reach the SAT solver")
	}
}

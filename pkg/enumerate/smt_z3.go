//go:build z3

package enumerate

import (
	"github.com/aclements/go-z3/z3"

	"github.com/gitrdm/gofmb/pkg/config"
	"github.com/gitrdm/gofmb/pkg/markers"
	"github.com/gitrdm/gofmb/pkg/satface"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// smtZ3 implements Mode B' (§4.6, optional): one Z3 integer variable per
// distinct sort, asserted positive, with the distinct-sort constraints and
// every learned no-good translated to a disjunction of integer comparisons.
// Each step re-solves and reads back the model Z3 returns; that model is
// not minimised by sum. unsat proves no finite model exists.
type smtZ3 struct {
	cfg *config.Config
	ss  *sig.SortedSignature
	ml  *markers.Layout

	ctx    *z3.Context
	solver *z3.Solver
	vars   []z3.Int
}

func newSMT(cfg *config.Config) (Strategy, error) {
	ctx := z3.NewContext(z3.NewConfig())
	return &smtZ3{cfg: cfg, ctx: ctx, solver: z3.NewSolver(ctx)}, nil
}

func (s *smtZ3) SetLayout(ml *markers.Layout) { s.ml = ml }

func (s *smtZ3) Init(ss *sig.SortedSignature) {
	s.ss = ss
	s.vars = make([]z3.Int, len(ss.DistinctSorts))
	for i, d := range ss.DistinctSorts {
		v := s.ctx.IntConst(d.Name)
		s.vars[i] = v
		s.solver.Assert(v.GT(s.ctx.FromInt(0, v.Sort())))
		if d.Max != sig.Unbounded {
			s.solver.Assert(v.LE(s.ctx.FromInt(int64(d.Max), v.Sort())))
		}
	}
	for _, c := range ss.NonStrict {
		s.solver.Assert(s.vars[c.A].GE(s.vars[c.B]))
	}
	for _, c := range ss.Strict {
		s.solver.Assert(s.vars[c.A].GT(s.vars[c.B]))
	}
}

// LearnNogood asserts the negation of the failed size vector's defining
// comparisons, matching §4.6's "each no-good becomes a disjunction over
// per-sort comparisons".
func (s *smtZ3) LearnNogood(failed []satface.Lit) {
	var disjuncts []z3.Bool
	for i, d := range s.ss.DistinctSorts {
		cur := s.ctx.FromInt(int64(d.Size), s.vars[i].Sort())
		disjuncts = append(disjuncts, s.vars[i].NE(cur))
	}
	if len(disjuncts) == 0 {
		return
	}
	clause := disjuncts[0]
	for _, d := range disjuncts[1:] {
		clause = clause.Or(d)
	}
	s.solver.Assert(clause)
}

func (s *smtZ3) IncreaseSizes() (ok bool, complete bool) {
	sat, err := s.solver.Check()
	if err != nil || !sat {
		return false, true
	}
	model := s.solver.Model()
	for i, v := range s.vars {
		val, exact := model.Eval(v, true).(z3.Int).AsInt64()
		if exact {
			s.ss.DistinctSorts[i].Size = int(val)
		}
	}
	return true, false
}

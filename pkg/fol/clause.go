// Package fol holds the flat-clause data model the encoder walks:
// pre-clausified, already-flattened literal forms (§3). Nothing in this
// package performs unification, ordering, or any other saturation-machinery
// concern; those stay upstream, in preprocessing.
package fol

// VarID identifies a clause-local variable. Variables are scoped to a
// single Clause; there is no cross-clause sharing.
type VarID int32

// LiteralKind distinguishes the three flat literal shapes §3 allows.
type LiteralKind uint8

const (
	// VarEq is a two-variable equality x = y (or its negation).
	VarEq LiteralKind = iota
	// FuncEq is f(x1,...,xn) = y (or its negation); every argument and the
	// result slot are variables.
	FuncEq
	// Pred is p(x1,...,xn) (or its negation).
	Pred
)

// Literal is one flat literal. Only the fields relevant to Kind are
// meaningful.
type Literal struct {
	Kind     LiteralKind
	Positive bool

	// VarEq
	X, Y VarID

	// FuncEq: Func is an index into Signature.Functions; Args has length
	// Arity, Result is the output variable.
	Func   int
	Args   []VarID
	Result VarID

	// Pred: Pred is an index into Signature.Predicates.
	Pred int
}

// Clause is a disjunction of flat literals together with the inferred sort
// of every variable it mentions.
type Clause struct {
	Literals []Literal

	// VarSort maps every variable occurring in the clause to a source-sort
	// index. A variable absent from this map has no inferred sort and the
	// clause must be one of the trivially-satisfiable cases described in
	// §4.2.
	VarSort map[VarID]int

	// Vars is VarSort's keys in a stable order, precomputed once so the
	// encoder's odometer does not need to range over a map on the hot
	// path.
	Vars []VarID
}

// Problem is the preprocessing output the core consumes (§6). It is never
// mutated by the core.
type Problem struct {
	Clauses []*Clause

	HadIncompleteTransformation bool
	KnownInfiniteDomain         bool
	HasInterpretedOperations    bool
}

// Inappropriate reports whether the problem is one the core must refuse
// without instantiating a SAT solver (§7 Inappropriate-input).
func (p *Problem) Inappropriate() bool {
	return p.HadIncompleteTransformation || p.KnownInfiniteDomain || p.HasInterpretedOperations
}

// GroundRefutation scans for a unit ground clause of the form a != a
// discovered during flattening (§7 Refutation-found-during-init): a clause
// with exactly one literal, a negative VarEq, whose two variables are
// provably the same position and never otherwise bound. Preprocessing
// marks such clauses by emitting a negative VarEq whose X and Y are the
// same VarID; that is the only shape the core needs to recognise here.
func (p *Problem) GroundRefutation() bool {
	for _, c := range p.Clauses {
		if len(c.Literals) != 1 {
			continue
		}
		l := c.Literals[0]
		if l.Kind == VarEq && !l.Positive && l.X == l.Y {
			return true
		}
	}
	return false
}

// VariablesInOrder returns c.Vars, computing and caching it on first use.
func (c *Clause) VariablesInOrder() []VarID {
	if c.Vars != nil {
		return c.Vars
	}
	vars := make([]VarID, 0, len(c.VarSort))
	seen := make(map[VarID]bool, len(c.VarSort))
	addVar := func(v VarID) {
		if _, ok := c.VarSort[v]; ok && !seen[v] {
			seen[v] = true
			vars = append(vars, v)
		}
	}
	for _, l := range c.Literals {
		switch l.Kind {
		case VarEq:
			addVar(l.X)
			addVar(l.Y)
		case FuncEq:
			for _, a := range l.Args {
				addVar(a)
			}
			addVar(l.Result)
		case Pred:
			for _, a := range l.Args {
				addVar(a)
			}
		}
	}
	c.Vars = vars
	return vars
}

// TriviallySatisfiable implements the §4.2 edge case: a clause consisting
// entirely of variable equalities whose variable-sort map is empty is
// trivially satisfiable and must be skipped by the encoder. We rely on
// preprocessing to guarantee at least one positive equality in such a
// clause, so detecting "no sort information at all" is sufficient.
func (c *Clause) TriviallySatisfiable() bool {
	if len(c.VarSort) != 0 {
		return false
	}
	for _, l := range c.Literals {
		if l.Kind != VarEq {
			return false
		}
	}
	return len(c.Literals) > 0
}

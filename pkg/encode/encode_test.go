package encode

import (
	"context"
	"testing"

	"github.com/gitrdm/gofmb/pkg/config"
	"github.com/gitrdm/gofmb/pkg/fol"
	"github.com/gitrdm/gofmb/pkg/layout"
	"github.com/gitrdm/gofmb/pkg/markers"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// unarySortSig builds a one-sort signature with a single constant-free
// setup, sized to `size`, used by several encoder tests below.
func unarySortSig(size int) *sig.SortedSignature {
	return &sig.SortedSignature{
		Sig:                     &sig.Signature{},
		SourceSorts:             []*sig.SourceSort{{Name: "sigma", Bound: sig.Unbounded, Parent: 0}},
		DistinctSorts:           []*sig.DistinctSort{{Name: "sigma", Min: 1, Max: sig.Unbounded, Size: size}},
		VampireToDistinctParent: []int{0},
		SortedConstants:         map[int][]int{},
	}
}

func buildOffsetsAndMarkers(t *testing.T, ss *sig.SortedSignature, mode markers.Mode) (*layout.Table, *markers.Layout) {
	t.Helper()
	offsets, err := layout.Build(ss, false)
	if err != nil {
		t.Fatalf("layout.Build: %v", err)
	}
	ml, next, err := markers.Build(mode, ss, offsets.NextFree)
	if err != nil {
		t.Fatalf("markers.Build: %v", err)
	}
	offsets.NextFree = next
	return offsets, ml
}

func TestInstancesSkipsTriviallySatisfiable(t *testing.T) {
	ss := unarySortSig(1)
	offsets, ml := buildOffsetsAndMarkers(t, ss, markers.ModeContour)
	clause := &fol.Clause{
		Literals: []fol.Literal{{Kind: fol.VarEq, Positive: true, X: 0, Y: 0}},
		VarSort:  map[fol.VarID]int{},
	}
	var got [][]int64
	err := Instances(context.Background(), clause, ss, offsets, ml, func(lits []int64) error {
		got = append(got, lits)
		return nil
	})
	if err != nil {
		t.Fatalf("Instances: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no clauses for a trivially-satisfiable input, got %v", got)
	}
}

func TestInstancesGroundsOverBounds(t *testing.T) {
	ss := unarySortSig(2)
	ss.Sig.Predicates = []*sig.PredSymbol{{Name: "p", Arity: 1, Sig: []int{0}}}
	offsets, ml := buildOffsetsAndMarkers(t, ss, markers.ModeContour)

	clause := &fol.Clause{
		Literals: []fol.Literal{{Kind: fol.Pred, Positive: true, Pred: 0, Args: []fol.VarID{0}}},
		VarSort:  map[fol.VarID]int{0: 0},
	}
	var got [][]int64
	err := Instances(context.Background(), clause, ss, offsets, ml, func(lits []int64) error {
		cp := make([]int64, len(lits))
		copy(cp, lits)
		got = append(got, cp)
		return nil
	})
	if err != nil {
		t.Fatalf("Instances: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d groundings, want 2 (one per domain value)", len(got))
	}
}

func TestFunctionalDefinitionAxiomsCoversAllResultPairs(t *testing.T) {
	ss := unarySortSig(3)
	ss.Sig.Functions = []*sig.FuncSymbol{{Name: "f", Arity: 0, Sig: []int{0}}}
	offsets, err := layout.Build(ss, false)
	if err != nil {
		t.Fatalf("layout.Build: %v", err)
	}

	var got [][]int64
	err = FunctionalDefinitionAxioms(context.Background(), ss, offsets, func(lits []int64) error {
		got = append(got, lits)
		return nil
	})
	if err != nil {
		t.Fatalf("FunctionalDefinitionAxioms: %v", err)
	}
	// size 3: C(3,2) = 3 forbidden pairs for the single nullary function.
	if len(got) != 3 {
		t.Fatalf("got %d clauses, want 3", len(got))
	}
	for _, c := range got {
		if len(c) != 2 {
			t.Fatalf("clause %v should have exactly 2 literals", c)
		}
	}
}

func TestTotalityAxiomsContourStaircaseLength(t *testing.T) {
	ss := unarySortSig(3)
	ss.Sig.Functions = []*sig.FuncSymbol{{Name: "f", Arity: 0, Sig: []int{0}}}
	offsets, ml := buildOffsetsAndMarkers(t, ss, markers.ModeContour)

	var got [][]int64
	err := TotalityAxioms(context.Background(), ss, offsets, ml, func(lits []int64) error {
		got = append(got, lits)
		return nil
	})
	if err != nil {
		t.Fatalf("TotalityAxioms: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d clauses, want one per candidate cardinality (3)", len(got))
	}
}

func TestTotalityAxiomsSBMEAMSingleClause(t *testing.T) {
	ss := unarySortSig(3)
	ss.Sig.Functions = []*sig.FuncSymbol{{Name: "f", Arity: 0, Sig: []int{0}}}
	offsets, ml := buildOffsetsAndMarkers(t, ss, markers.ModeSBMEAM)

	var got [][]int64
	err := TotalityAxioms(context.Background(), ss, offsets, ml, func(lits []int64) error {
		got = append(got, lits)
		return nil
	})
	if err != nil {
		t.Fatalf("TotalityAxioms: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d clauses, want exactly 1 in Mode B", len(got))
	}
}

func TestBuildOrderingConstantsFirst(t *testing.T) {
	ss := unarySortSig(2)
	ss.Sig.Functions = []*sig.FuncSymbol{
		{Name: "a", Arity: 0, Sig: []int{0}},
		{Name: "b", Arity: 0, Sig: []int{0}},
	}
	ss.SortedConstants[0] = []int{0, 1}

	terms := BuildOrdering(ss, 0, config.OrderFunctionFirst, 2)
	if len(terms) != 2 || terms[0].Func != 0 || terms[1].Func != 1 {
		t.Fatalf("terms = %+v, want constants a then b", terms)
	}
}

func TestRestrictedTotalityAxiomShape(t *testing.T) {
	ss := unarySortSig(2)
	ss.Sig.Functions = []*sig.FuncSymbol{{Name: "a", Arity: 0, Sig: []int{0}}}
	ss.SortedConstants[0] = []int{0}
	offsets, err := layout.Build(ss, false)
	if err != nil {
		t.Fatalf("layout.Build: %v", err)
	}
	terms := BuildOrdering(ss, 0, config.OrderFunctionFirst, 1)

	clause := RestrictedTotalityAxiom(offsets, terms, 1)
	if len(clause) != 1 {
		t.Fatalf("clause = %v, want exactly 1 literal for n=1", clause)
	}
}

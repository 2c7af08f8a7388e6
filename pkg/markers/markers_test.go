package markers

import (
	"testing"

	"github.com/gitrdm/gofmb/pkg/sig"
)

func twoSortSig(sizes ...int) *sig.SortedSignature {
	ds := make([]*sig.DistinctSort, len(sizes))
	for i, s := range sizes {
		ds[i] = &sig.DistinctSort{Name: "s", Min: 1, Max: sig.Unbounded, Size: s}
	}
	return &sig.SortedSignature{DistinctSorts: ds}
}

func TestBuildContourReservesOneIDPerSize(t *testing.T) {
	ss := twoSortSig(2, 3)
	l, next, err := Build(ModeContour, ss, 10)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if l.Count != 5 {
		t.Fatalf("Count = %d, want 5", l.Count)
	}
	if next != 15 {
		t.Fatalf("next = %d, want 15", next)
	}
	if l.ContourMarker(0, 0) != 10 || l.ContourMarker(0, 1) != 11 {
		t.Fatalf("sort 0 markers misplaced")
	}
	if l.ContourMarker(1, 0) != 12 {
		t.Fatalf("sort 1 markers should start right after sort 0's block")
	}
}

func TestBuildSBMEAMReservesTwoIDsPerSort(t *testing.T) {
	ss := twoSortSig(2, 3)
	l, next, err := Build(ModeSBMEAM, ss, 10)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if l.Count != 4 || next != 14 {
		t.Fatalf("Count=%d next=%d, want 4, 14", l.Count, next)
	}
	if l.Tot(0) == l.Inst(0) || l.Tot(0) == l.Tot(1) {
		t.Fatal("marker ids must be distinct")
	}
}

func TestStaircaseAxiomsDescendingImplication(t *testing.T) {
	ss := twoSortSig(3)
	l, _, _ := Build(ModeContour, ss, 1)
	clauses := l.StaircaseAxioms(ss)
	if len(clauses) != 2 {
		t.Fatalf("got %d staircase clauses, want 2 for size 3", len(clauses))
	}
	// clause j: (-marker[j+1], marker[j])
	want0 := []int64{-l.ContourMarker(0, 1), l.ContourMarker(0, 0)}
	if clauses[0][0] != want0[0] || clauses[0][1] != want0[1] {
		t.Fatalf("clause 0 = %v, want %v", clauses[0], want0)
	}
}

func TestAssumptionsContour(t *testing.T) {
	ss := twoSortSig(2, 4)
	l, _, _ := Build(ModeContour, ss, 1)
	assumps := l.Assumptions(ss)
	if len(assumps) != 2 {
		t.Fatalf("got %d assumptions, want 1 per sort", len(assumps))
	}
	if assumps[0] != -l.ContourMarker(0, 1) {
		t.Fatalf("assumption for sort 0 = %d, want %d", assumps[0], -l.ContourMarker(0, 1))
	}
}

func TestAssumptionsSBMEAM(t *testing.T) {
	ss := twoSortSig(2, 4)
	l, _, _ := Build(ModeSBMEAM, ss, 1)
	assumps := l.Assumptions(ss)
	if len(assumps) != 4 {
		t.Fatalf("got %d assumptions, want 2 per sort", len(assumps))
	}
}

func TestInstanceGuardLiteralsSkipsMonotonic(t *testing.T) {
	ss := twoSortSig(3)
	ss.DistinctSorts[0].Monotonic = true
	l, _, _ := Build(ModeContour, ss, 1)

	guards := l.InstanceGuardLiterals(ss, map[int]int{0: 2})
	if len(guards) != 0 {
		t.Fatalf("monotonic sort should never be guarded, got %v", guards)
	}
}

func TestInstanceGuardLiteralsContourOmitsAtOne(t *testing.T) {
	ss := twoSortSig(3)
	l, _, _ := Build(ModeContour, ss, 1)

	if g := l.InstanceGuardLiterals(ss, map[int]int{0: 1}); len(g) != 0 {
		t.Fatalf("maxVal=1 needs no guard, got %v", g)
	}
	g := l.InstanceGuardLiterals(ss, map[int]int{0: 3})
	if len(g) != 1 || g[0] != -l.ContourMarker(0, 1) {
		t.Fatalf("guard = %v, want [%d]", g, -l.ContourMarker(0, 1))
	}
}

func TestTotalityGuardLiteralSBMEAM(t *testing.T) {
	ss := twoSortSig(2)
	l, _, _ := Build(ModeSBMEAM, ss, 1)
	if got := l.TotalityGuardLiteral(ss, 0, 1); got != -l.Tot(0) {
		t.Fatalf("guard = %d, want %d", got, -l.Tot(0))
	}
}

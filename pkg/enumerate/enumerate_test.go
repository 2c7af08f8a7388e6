package enumerate

import (
	"testing"

	"github.com/gitrdm/gofmb/pkg/config"
	"github.com/gitrdm/gofmb/pkg/markers"
	"github.com/gitrdm/gofmb/pkg/sig"
)

func oneSortSig(size int) *sig.SortedSignature {
	return &sig.SortedSignature{
		Sig:                     &sig.Signature{},
		SourceSorts:             []*sig.SourceSort{{Name: "sigma", Bound: sig.Unbounded, Parent: 0}},
		DistinctSorts:           []*sig.DistinctSort{{Name: "sigma", Min: 1, Max: sig.Unbounded, Size: size}},
		VampireToDistinctParent: []int{0},
	}
}

func twoSortSig(sizeA, sizeB int) *sig.SortedSignature {
	return &sig.SortedSignature{
		Sig: &sig.Signature{},
		SourceSorts: []*sig.SourceSort{
			{Name: "sigma", Bound: sig.Unbounded, Parent: 0},
			{Name: "tau", Bound: sig.Unbounded, Parent: 1},
		},
		DistinctSorts: []*sig.DistinctSort{
			{Name: "sigma", Min: 1, Max: sig.Unbounded, Size: sizeA},
			{Name: "tau", Min: 1, Max: sig.Unbounded, Size: sizeB},
		},
		VampireToDistinctParent: []int{0, 1},
	}
}

func TestContourGrowsSortNamedByCore(t *testing.T) {
	ss := oneSortSig(1)
	ml, _, err := markers.Build(markers.ModeContour, ss, 1)
	if err != nil {
		t.Fatalf("markers.Build: %v", err)
	}

	c := newContour(config.Default())
	c.Init(ss)
	c.SetLayout(ml)
	c.LearnNogood([]int64{-ml.ContourMarker(0, 0)})

	ok, complete := c.IncreaseSizes()
	if !ok || complete {
		t.Fatalf("IncreaseSizes = (%v, %v), want (true, false)", ok, complete)
	}
	if ss.DistinctSorts[0].Size != 2 {
		t.Fatalf("Size = %d, want 2", ss.DistinctSorts[0].Size)
	}
}

func TestContourExhaustedAtMax(t *testing.T) {
	ss := oneSortSig(3)
	ss.DistinctSorts[0].Max = 3
	ml, _, _ := markers.Build(markers.ModeContour, ss, 1)

	c := newContour(config.Default())
	c.Init(ss)
	c.SetLayout(ml)
	c.LearnNogood([]int64{-ml.ContourMarker(0, 2)})

	ok, complete := c.IncreaseSizes()
	if ok || !complete {
		t.Fatalf("IncreaseSizes = (%v, %v), want (false, true) at max", ok, complete)
	}
}

func TestContourPropagatesGrowthAcrossNonStrictConstraint(t *testing.T) {
	ss := twoSortSig(1, 1)
	ss.NonStrict = []sig.SizeConstraint{{A: 0, B: 1}} // size[sigma] >= size[tau]
	ml, _, err := markers.Build(markers.ModeContour, ss, 1)
	if err != nil {
		t.Fatalf("markers.Build: %v", err)
	}

	c := newContour(config.Default())
	c.Init(ss)
	c.SetLayout(ml)
	c.LearnNogood([]int64{-ml.ContourMarker(1, 0)}) // name tau as the core sort

	ok, complete := c.IncreaseSizes()
	if !ok || complete {
		t.Fatalf("IncreaseSizes = (%v, %v), want (true, false)", ok, complete)
	}
	if ss.DistinctSorts[1].Size != 2 {
		t.Fatalf("tau.Size = %d, want 2", ss.DistinctSorts[1].Size)
	}
	if ss.DistinctSorts[0].Size != 2 {
		t.Fatalf("sigma.Size = %d, want 2 (forced up by size[sigma] >= size[tau])", ss.DistinctSorts[0].Size)
	}
}

func TestSBMEAMEQNogoodRejectsSameSize(t *testing.T) {
	ss := oneSortSig(1)
	ml, _, _ := markers.Build(markers.ModeSBMEAM, ss, 1)

	s := newSBMEAM(config.New(config.WithKeepSbeamGenerators(true)))
	s.Init(ss)
	s.SetLayout(ml)
	// tot[0] failed with sort non-monotonic: EQ-tag at the current size (1).
	s.LearnNogood([]int64{ml.Tot(0)})

	n := s.nogoods[0]
	if n.tags[0] != tagEQ || n.vals[0] != 1 {
		t.Fatalf("nogood = %+v, want EQ at size 1", n)
	}

	ok, _ := s.IncreaseSizes()
	if !ok {
		t.Fatal("expected a candidate to grow past the EQ=1 no-good")
	}
	if ss.DistinctSorts[0].Size != 2 {
		t.Fatalf("Size = %d, want 2 (the only non-rejected (+1) increment)", ss.DistinctSorts[0].Size)
	}
}

func TestSBMEAMMonotonicTotFailureTagsLEQ(t *testing.T) {
	ss := oneSortSig(2)
	ss.DistinctSorts[0].Monotonic = true
	ml, _, _ := markers.Build(markers.ModeSBMEAM, ss, 1)

	s := newSBMEAM(config.Default())
	s.Init(ss)
	s.SetLayout(ml)
	s.LearnNogood([]int64{ml.Tot(0)})

	if s.nogoods[0].tags[0] != tagLEQ {
		t.Fatalf("tag = %v, want LEQ for a monotonic sort", s.nogoods[0].tags[0])
	}
}

func TestSBMEAMAcceptedRejectsDistinctSortConstraintViolation(t *testing.T) {
	ss := twoSortSig(2, 2)
	ss.Strict = []sig.SizeConstraint{{A: 0, B: 1}} // size[sigma] > size[tau]

	s := newSBMEAM(config.Default())
	s.Init(ss)

	if s.accepted([]int{2, 2}) {
		t.Fatal("candidate violating size[sigma] > size[tau] should be rejected")
	}
	if !s.accepted([]int{3, 2}) {
		t.Fatal("candidate satisfying size[sigma] > size[tau] should be accepted")
	}
}

func TestNogoodMatchesGEQ(t *testing.T) {
	n := nogood{tags: []tag{tagGEQ}, vals: []int{3}}
	if !n.matches([]int{3}) || !n.matches([]int{5}) {
		t.Fatal("GEQ no-good should match any candidate >= its value")
	}
	if n.matches([]int{2}) {
		t.Fatal("GEQ no-good should not match a candidate below its value")
	}
}

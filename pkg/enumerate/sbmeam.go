package enumerate

import (
	"container/heap"

	"github.com/gitrdm/gofmb/pkg/config"
	"github.com/gitrdm/gofmb/pkg/markers"
	"github.com/gitrdm/gofmb/pkg/satface"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// tag is one of §4.6's no-good tags per distinct sort.
type tag int

const (
	tagStar tag = iota // don't-care: this sort's size did not matter to the refutation
	tagEQ              // the refutation depended on exactly this size
	tagLEQ             // the refutation holds for any size <= val (monotonic growth only helps)
	tagGEQ             // the refutation holds for any size >= val
)

// nogood is one learned constraint-generator vector (§4.6 Mode B): a tag
// plus the size it was learned at, for every distinct sort.
type nogood struct {
	tags []tag
	vals []int
}

// matches reports whether this no-good covers candidate sizes, i.e. whether
// accepting candidate would reproduce an already-refuted configuration.
func (n *nogood) matches(candidate []int) bool {
	for s, t := range n.tags {
		switch t {
		case tagEQ:
			if n.vals[s] != candidate[s] {
				return false
			}
		case tagLEQ:
			if n.vals[s] < candidate[s] {
				return false
			}
		case tagGEQ:
			if n.vals[s] > candidate[s] {
				return false
			}
		case tagStar:
			// no constraint
		}
	}
	return true
}

// generator is one candidate size vector sitting in the priority heap.
type generator struct {
	sizes  []int
	weight int
}

type genHeap []*generator

func (h genHeap) Len() int            { return len(h) }
func (h genHeap) Less(i, j int) bool  { return h[i].weight < h[j].weight }
func (h genHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *genHeap) Push(x interface{}) { *h = append(*h, x.(*generator)) }
func (h *genHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// sbmeam implements Mode B (§4.6): a heap of candidate size-vector
// generators, pruned by learned no-goods, grown one (+1) increment per
// accepted step.
type sbmeam struct {
	cfg *config.Config
	ss  *sig.SortedSignature
	ml  *markers.Layout

	nogoods []nogood
	heap    genHeap
}

func newSBMEAM(cfg *config.Config) *sbmeam {
	return &sbmeam{cfg: cfg}
}

func (s *sbmeam) Init(ss *sig.SortedSignature) {
	s.ss = ss
	sizes := make([]int, len(ss.DistinctSorts))
	weight := 0
	for i, d := range ss.DistinctSorts {
		sizes[i] = d.Size
		weight += d.Size
	}
	s.heap = genHeap{{sizes: sizes, weight: weight}}
	heap.Init(&s.heap)
}

func (s *sbmeam) SetLayout(ml *markers.Layout) {
	s.ml = ml
}

// LearnNogood decodes which sorts' tot/inst markers appear in the failed
// core (§4.6 Mode B) into a fresh no-good recorded against the current size
// vector.
func (s *sbmeam) LearnNogood(failed []satface.Lit) {
	failedSet := make(map[satface.Lit]bool, len(failed))
	for _, l := range failed {
		failedSet[l] = true
	}

	n := nogood{
		tags: make([]tag, len(s.ss.DistinctSorts)),
		vals: make([]int, len(s.ss.DistinctSorts)),
	}
	for sortIdx, d := range s.ss.DistinctSorts {
		n.vals[sortIdx] = d.Size
		switch {
		case failedSet[s.ml.Tot(sortIdx)]:
			if d.Monotonic {
				n.tags[sortIdx] = tagLEQ
			} else {
				n.tags[sortIdx] = tagEQ
			}
		case failedSet[s.ml.Inst(sortIdx)]:
			n.tags[sortIdx] = tagGEQ
		default:
			n.tags[sortIdx] = tagStar
		}
	}
	s.nogoods = append(s.nogoods, n)
}

func (s *sbmeam) accepted(candidate []int) bool {
	for i, v := range candidate {
		if !s.ss.SatisfiesSizeVector(i, v) {
			return false
		}
	}
	if !s.ss.SatisfiesDistinctSortConstraints(candidate) {
		return false
	}
	for _, n := range s.nogoods {
		if n.matches(candidate) {
			return false
		}
	}
	return true
}

func (s *sbmeam) IncreaseSizes() (ok bool, complete bool) {
	for s.heap.Len() > 0 {
		g := heap.Pop(&s.heap).(*generator)

		var bestCandidate []int
		bestWeight := 0
		found := false
		for i := range g.sizes {
			candidate := make([]int, len(g.sizes))
			copy(candidate, g.sizes)
			candidate[i]++
			if !s.accepted(candidate) {
				continue
			}
			w := 0
			for _, v := range candidate {
				w += v
			}
			if !found || w < bestWeight {
				found = true
				bestCandidate = candidate
				bestWeight = w
			}
			heap.Push(&s.heap, &generator{sizes: candidate, weight: w})
		}

		// A generator with no accepted increment is dropped even when
		// generators are kept: no-goods only accumulate, so its increments
		// stay rejected, and pushing it back would pop it forever.
		if s.cfg.KeepSbeamGenerators && found {
			heap.Push(&s.heap, g)
		}

		if found {
			for i, v := range bestCandidate {
				s.ss.DistinctSorts[i].Size = v
			}
			return true, false
		}
	}
	// Discarding generators (KeepSbeamGenerators == false) can make the
	// search miss a size vector a retained generator would have reached,
	// so only report a genuine proof of no finite model when generators
	// were kept throughout.
	return false, s.cfg.KeepSbeamGenerators
}

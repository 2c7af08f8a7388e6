package enumerate

import (
	"github.com/gitrdm/gofmb/pkg/config"
	"github.com/gitrdm/gofmb/pkg/markers"
	"github.com/gitrdm/gofmb/pkg/satface"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// contour implements Mode A (§4.6): for each sort appearing in the failed
// core, grow the sort of minimum weight, alternating every sizeWeightRatio
// calls between FIFO weight (size[s] itself) and an estimated post-growth
// instance count, then close distinct-sort constraints under fixpoint.
type contour struct {
	cfg *config.Config
	ss  *sig.SortedSignature
	ml  *markers.Layout

	core     map[int]bool // distinct sorts named by the last failed core
	callNum  int
}

func newContour(cfg *config.Config) *contour {
	return &contour{cfg: cfg}
}

func (c *contour) Init(ss *sig.SortedSignature) {
	c.ss = ss
}

func (c *contour) SetLayout(ml *markers.Layout) {
	c.ml = ml
}

// LearnNogood decodes the contour marker core: a negated ContourMarker
// literal -marker[s][size[s]-1] names sort s as having contributed to the
// refutation (§4.5's Assumptions builds exactly one such literal per sort).
func (c *contour) LearnNogood(failed []satface.Lit) {
	c.core = make(map[int]bool, len(failed))
	for s, d := range c.ss.DistinctSorts {
		want := -c.ml.ContourMarker(s, d.Size-1)
		for _, lit := range failed {
			if lit == want {
				c.core[s] = true
				break
			}
		}
	}
	// A conservative FailedAssumptions() (every adapter may return the
	// whole assumption vector, not a minimal core) can mark every sort;
	// that is still sound here, just less selective about which sort
	// grows first.
}

// estimatedInstanceWeight approximates "post-growth instance count" (§4.2)
// by the number of function and predicate slots whose signature mentions
// this distinct sort: growing a heavily-referenced sort costs more clauses,
// so it is a reasonable proxy for an otherwise-unspecified instance-count
// estimate.
func (c *contour) estimatedInstanceWeight(distinctSort int) int {
	weight := 0
	for _, f := range c.ss.Sig.Functions {
		if f.Deleted {
			continue
		}
		for _, s := range f.Sig {
			if c.ss.VampireToDistinctParent[s] == distinctSort {
				weight++
			}
		}
	}
	for _, p := range c.ss.Sig.Predicates {
		if p.Deleted {
			continue
		}
		for _, s := range p.Sig {
			if c.ss.VampireToDistinctParent[s] == distinctSort {
				weight++
			}
		}
	}
	return weight
}

func (c *contour) weight(distinctSort int) int {
	ratio := c.cfg.SizeWeightRatio
	if ratio < 1 {
		ratio = 1
	}
	useEstimate := c.callNum%(ratio+1) == ratio
	if useEstimate {
		return c.estimatedInstanceWeight(distinctSort)
	}
	return c.ss.DistinctSorts[distinctSort].Size
}

func (c *contour) IncreaseSizes() (ok bool, complete bool) {
	c.callNum++

	best := -1
	bestWeight := 0
	for s, d := range c.ss.DistinctSorts {
		if len(c.core) > 0 && !c.core[s] {
			continue
		}
		if d.Max != sig.Unbounded && d.Size >= d.Max {
			continue
		}
		w := c.weight(s)
		if best == -1 || w < bestWeight {
			best = s
			bestWeight = w
		}
	}

	// Nothing in the core could grow; fall back to any growable sort so a
	// conservative (over-approximating) FailedAssumptions still makes
	// progress instead of spuriously reporting exhaustion.
	if best == -1 {
		for s, d := range c.ss.DistinctSorts {
			if d.Max != sig.Unbounded && d.Size >= d.Max {
				continue
			}
			w := c.weight(s)
			if best == -1 || w < bestWeight {
				best = s
				bestWeight = w
			}
		}
	}

	if best == -1 {
		return false, true // every sort pinned at its max: CONTOUR is complete
	}

	c.ss.DistinctSorts[best].Size++
	c.ss.PropagateSizeGrowth()
	return true, false
}

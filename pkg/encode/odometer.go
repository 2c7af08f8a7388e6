// Package encode walks flat clauses and emits propositional SAT clauses for
// every grounding (§4.2), the functional-definition axioms (§4.3), the
// symmetry-breaking axioms (§4.4), and the totality axioms tied to the
// marker-assumption scheme (§4.5).
package encode

// EachGrounding enumerates every tuple of 1-based values within bounds, in
// odometer order: the right-most coordinate advances fastest, wrapping from
// its bound back to 1 with carry into the coordinate to its left (§4.2,
// §4.3: "Grounding enumeration is an odometer"). visit is called once per
// tuple with a slice it must not retain past the call (it is reused). It
// stops early if visit returns false.
//
// If any bound is < 1 the domain is empty and no tuple is ever visited.
// When len(bounds) == 0 there is exactly one (empty) tuple, and visit is
// called once with it.
func EachGrounding(bounds []int, visit func(values []int) bool) {
	n := len(bounds)
	for _, b := range bounds {
		if b < 1 {
			return
		}
	}
	values := make([]int, n)
	for i := range values {
		values[i] = 1
	}
	for {
		if !visit(values) {
			return
		}
		i := n - 1
		for i >= 0 {
			values[i]++
			if values[i] <= bounds[i] {
				break
			}
			values[i] = 1
			i--
		}
		if i < 0 {
			return
		}
	}
}

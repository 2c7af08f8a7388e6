// Package errs defines the structured error kinds the core's phases return.
// Only the driver turns these into a final MainLoopResult status (§7); every
// other package returns one of these values and nothing more opinionated.
package errs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CannotEncode is returned by reset when a variable-id block would overflow
// the SAT solver's id capacity. It carries enough detail for a caller to
// log what overflowed without re-deriving it.
type CannotEncode struct {
	Symbol string // function or predicate name, or "<markers>"
	Reason string
}

func (e *CannotEncode) Error() string {
	return fmt.Sprintf("cannot encode: %s: %s", e.Symbol, e.Reason)
}

// Inappropriate is returned when a Problem is unsuitable for this core
// (interpreted arithmetic, known-infinite domain, incomplete prior
// transformation).
type Inappropriate struct {
	Reason string
}

func (e *Inappropriate) Error() string { return "inappropriate input: " + e.Reason }

// EnumeratorExhausted is returned when no further size vector can be
// produced. Complete reports whether the active enumeration strategy is
// complete for this problem shape, which decides whether the driver reports
// a genuine refutation or merely "not found".
type EnumeratorExhausted struct {
	Complete bool
}

func (e *EnumeratorExhausted) Error() string {
	if e.Complete {
		return "enumerator exhausted: no finite model within bounds"
	}
	return "enumerator exhausted: incomplete strategy, no further candidate"
}

// Timeout is returned by the phase deadline check.
type Timeout struct{}

func (e *Timeout) Error() string { return "deadline exceeded" }

// SolverOOM wraps a resource-exhaustion report surfaced by the SAT solver.
type SolverOOM struct {
	Detail string
}

func (e *SolverOOM) Error() string { return "SAT solver out of memory: " + e.Detail }

// Append accumulates non-nil errors into a *multierror.Error, for places
// where more than one independent problem needs reporting as a single
// value (package extract uses it for multiple failed symbol evaluations).
// Reset does not use it: layout.Build returns the first overflow it meets.
func Append(into error, errs ...error) error {
	var merr *multierror.Error
	if into != nil {
		merr = multierror.Append(merr, into)
	}
	for _, e := range errs {
		if e != nil {
			merr = multierror.Append(merr, e)
		}
	}
	if merr == nil {
		return nil
	}
	return merr.ErrorOrNil()
}

// Package enumerate implements the domain-size enumerator (§4.6): given the
// SAT solver's failed assumption set from the last UNSAT call, it decides
// the next candidate size vector, or reports that no finite model exists
// within the configured bounds.
package enumerate

import (
	"github.com/gitrdm/gofmb/pkg/config"
	"github.com/gitrdm/gofmb/pkg/errs"
	"github.com/gitrdm/gofmb/pkg/markers"
	"github.com/gitrdm/gofmb/pkg/satface"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// Strategy is the capability interface every enumeration mode implements.
// The driver never branches on mode itself; it only calls these four
// operations (§9 design notes: "a pluggable capability interface, not a
// switch in the driver").
type Strategy interface {
	// Init records the signature this run will grow sizes against and
	// seeds any internal search state (e.g. SBMEAM's generator heap).
	// Called exactly once per run, before the first SetLayout.
	Init(ss *sig.SortedSignature)

	// SetLayout records the marker layout for the epoch about to be
	// solved, so a subsequent LearnNogood can decode failed assumptions
	// against the right variable ids. Called once per epoch: marker ids
	// shift every reset, but re-seeding search state the way Init does
	// would discard everything already learned.
	SetLayout(ml *markers.Layout)

	// LearnNogood consumes the failed assumption set from one UNSAT solve
	// and records whatever internal state the strategy needs to propose
	// the next size vector.
	LearnNogood(failed []satface.Lit)

	// IncreaseSizes grows ss.DistinctSorts[*].Size in place to the next
	// candidate vector and reports whether one could be produced. false
	// means the enumerator is exhausted: Complete reports whether that
	// exhaustion is a genuine proof of no finite model (true) or merely
	// the limit of an incomplete strategy (false).
	IncreaseSizes() (ok bool, complete bool)
}

// New constructs the Strategy named by cfg.EnumerationStrategy.
func New(cfg *config.Config) (Strategy, error) {
	switch cfg.EnumerationStrategy {
	case config.StrategyContour:
		return newContour(cfg), nil
	case config.StrategySBMEAM:
		return newSBMEAM(cfg), nil
	case config.StrategySMT:
		return newSMT(cfg)
	default:
		return nil, &errs.Inappropriate{Reason: "unknown enumerationStrategy " + string(cfg.EnumerationStrategy)}
	}
}

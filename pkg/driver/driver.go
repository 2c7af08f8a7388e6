// Package driver implements the single-threaded state machine (§4.6 "State
// machine (driver)", §5, §7) that ties the encoder, marker layout, SAT
// adapter and enumerator together into one run: Initial -> EncodeAndSolve
// -> (OnSat Extract -> Done) | (OnUnsat Enumerate -> EncodeAndSolve) |
// (OnCannotEncode -> GaveUp) | (OnEnumeratorExhausted -> Refuted).
package driver

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/gofmb/pkg/config"
	"github.com/gitrdm/gofmb/pkg/encode"
	"github.com/gitrdm/gofmb/pkg/enumerate"
	"github.com/gitrdm/gofmb/pkg/errs"
	"github.com/gitrdm/gofmb/pkg/extract"
	"github.com/gitrdm/gofmb/pkg/fol"
	"github.com/gitrdm/gofmb/pkg/layout"
	"github.com/gitrdm/gofmb/pkg/markers"
	"github.com/gitrdm/gofmb/pkg/satface"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// ResultStatus is one of §6's "Produced" MainLoopResult statuses.
type ResultStatus string

const (
	StatusSatisfiable        ResultStatus = "SATISFIABLE"
	StatusRefutation         ResultStatus = "REFUTATION"
	StatusInappropriate      ResultStatus = "INAPPROPRIATE"
	StatusTimeLimit          ResultStatus = "TIME_LIMIT"
	StatusRefutationNotFound ResultStatus = "REFUTATION_NOT_FOUND"
)

// MainLoopResult is the driver's terminal output.
type MainLoopResult struct {
	Status ResultStatus
	Model  *extract.Model // non-nil only when Status == StatusSatisfiable
}

// Deadline wraps a monotonic cutoff the driver checks between phases (§5:
// "a monotonic deadline checked between major phases"): a structured logger
// and a deadline check, no goroutine, no mutex, since the core is
// single-threaded.
type Deadline struct {
	logger hclog.Logger
	cutoff time.Time
	has    bool
}

// NewDeadline returns a Deadline with no cutoff (Check always passes).
func NewDeadline(logger hclog.Logger) *Deadline {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Deadline{logger: logger.Named("driver.deadline")}
}

// WithTimeout sets the cutoff d from now.
func (dl *Deadline) WithTimeout(d time.Duration) *Deadline {
	dl.cutoff = time.Now().Add(d)
	dl.has = true
	return dl
}

// Check returns errs.Timeout once the cutoff has passed.
func (dl *Deadline) Check() error {
	if !dl.has {
		return nil
	}
	if time.Now().After(dl.cutoff) {
		dl.logger.Debug("deadline exceeded")
		return &errs.Timeout{}
	}
	return nil
}

// Run executes the full state machine for one Problem against one
// SortedSignature, using solver as the SAT backend and strategy as the
// domain-size enumerator. ctx governs cancellation in addition to dl's
// wall-clock deadline; either aborts the run with StatusTimeLimit.
func Run(ctx context.Context, problem *fol.Problem, ss *sig.SortedSignature, cfg *config.Config, solver satface.Solver, strategy enumerate.Strategy, dl *Deadline, logger hclog.Logger) (*MainLoopResult, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("driver")
	if dl == nil {
		dl = NewDeadline(logger)
	}

	if err := cfg.Validate(); err != nil {
		return &MainLoopResult{Status: StatusInappropriate}, err
	}
	if problem.Inappropriate() {
		return &MainLoopResult{Status: StatusInappropriate}, nil
	}
	if problem.GroundRefutation() {
		logger.Info("ground refutation found during init")
		return &MainLoopResult{Status: StatusRefutation}, nil
	}

	ss.ResolveEPRSorts()
	for _, d := range ss.DistinctSorts {
		if d.Size < cfg.StartSize {
			d.Size = cfg.StartSize
		}
		if d.Size < d.Min {
			d.Size = d.Min
		}
	}
	ss.CloseSizeConstraints()

	markerMode := markers.ModeContour
	if cfg.EnumerationStrategy != config.StrategyContour {
		markerMode = markers.ModeSBMEAM
	}
	strategy.Init(ss)

	for {
		if err := ctx.Err(); err != nil {
			return &MainLoopResult{Status: StatusTimeLimit}, nil
		}
		if err := dl.Check(); err != nil {
			return &MainLoopResult{Status: StatusTimeLimit}, nil
		}

		epoch, err := encodeAndSolve(ctx, problem, ss, cfg, solver, strategy, markerMode, dl, logger)
		if err != nil {
			return nil, err
		}
		if epoch.result != nil {
			return epoch.result, nil
		}

		if epoch.cannotEncode {
			// §4.6 "OnCannotEncode -> GaveUp": growing the size vector
			// further only makes the block that overflowed bigger, so the
			// enumerator can never recover from this by continuing.
			logger.Warn("cannot-encode: current size vector aborted", "error", epoch.cannotEncodeErr)
			return &MainLoopResult{Status: StatusRefutationNotFound}, nil
		}
		if err := dl.Check(); err != nil {
			return &MainLoopResult{Status: StatusTimeLimit}, nil
		}
		strategy.LearnNogood(solver.FailedAssumptions())

		ok, complete := strategy.IncreaseSizes()
		if !ok {
			if complete {
				logger.Info("enumerator exhausted, strategy complete")
				return &MainLoopResult{Status: StatusRefutation}, nil
			}
			logger.Info("enumerator exhausted, strategy incomplete")
			return &MainLoopResult{Status: StatusRefutationNotFound}, nil
		}
	}
}

// epochOutcome is one encodeAndSolve call's result: either a terminal
// MainLoopResult (result != nil), a cannot-encode abort that ends the run
// with StatusRefutationNotFound (cannotEncode == true), or an ordinary
// UNSAT that the caller should feed to the enumerator as a learned
// no-good.
type epochOutcome struct {
	result          *MainLoopResult
	cannotEncode    bool
	cannotEncodeErr error
}

func encodeAndSolve(ctx context.Context, problem *fol.Problem, ss *sig.SortedSignature, cfg *config.Config, solver satface.Solver, strategy enumerate.Strategy, markerMode markers.Mode, dl *Deadline, logger hclog.Logger) (*epochOutcome, error) {
	solver.Reset()

	offsets, err := layout.Build(ss, cfg.SymbolOrder != config.OrderOccurrence)
	if err != nil {
		logger.Warn("cannot encode: symbol layout overflow", "error", err)
		return &epochOutcome{cannotEncode: true, cannotEncodeErr: err}, nil
	}

	ml, next, err := markers.Build(markerMode, ss, offsets.NextFree)
	if err != nil {
		logger.Warn("cannot encode: marker region overflow", "error", err)
		return &epochOutcome{cannotEncode: true, cannotEncodeErr: err}, nil
	}
	offsets.NextFree = next
	strategy.SetLayout(ml)

	solver.EnsureVarCount(offsets.NextFree - 1)

	if err := dl.Check(); err != nil {
		return &epochOutcome{result: &MainLoopResult{Status: StatusTimeLimit}}, nil
	}

	ord := encode.BuildOrderings(ss, cfg)

	if err := encode.Emit(ctx, problem, ss, offsets, ml, ord, cfg, func(lits []int64) error {
		return solver.AddClause(lits)
	}); err != nil {
		if ctx.Err() != nil {
			return &epochOutcome{result: &MainLoopResult{Status: StatusTimeLimit}}, nil
		}
		return nil, err
	}

	if err := dl.Check(); err != nil {
		return &epochOutcome{result: &MainLoopResult{Status: StatusTimeLimit}}, nil
	}

	if cfg.RandomTraversals {
		solver.RandomizeForNextAssignment(1)
	}

	status, err := solver.SolveUnderAssumptions(ml.Assumptions(ss))
	if err != nil {
		return nil, err
	}

	switch status {
	case satface.StatusSat:
		model := extract.Extract(ss, offsets, ml, solver)
		return &epochOutcome{result: &MainLoopResult{Status: StatusSatisfiable, Model: model}}, nil
	case satface.StatusUnsat:
		return &epochOutcome{}, nil
	default:
		return &epochOutcome{result: &MainLoopResult{Status: StatusTimeLimit}}, nil
	}
}

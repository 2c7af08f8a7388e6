// Package config holds the core's enumerated options (§6) as a single
// immutable value built through functional options: a Default, a Validate,
// and a Clone, the same quartet shape used elsewhere in this codebase for
// search configuration.
package config

import "github.com/gitrdm/gofmb/pkg/errs"

// EnumerationStrategy selects which domain-size enumerator drives the
// search loop.
type EnumerationStrategy string

const (
	StrategyContour EnumerationStrategy = "CONTOUR"
	StrategySBMEAM  EnumerationStrategy = "SBMEAM"
	StrategySMT     EnumerationStrategy = "SMT"
)

// WidgetOrder selects the symmetry-ordering heuristic (§4.4).
type WidgetOrder string

const (
	OrderFunctionFirst WidgetOrder = "function-first"
	OrderArgumentFirst WidgetOrder = "argument-first"
	OrderDiagonal      WidgetOrder = "diagonal"
)

// SymbolOrder selects the order functions/predicates are walked in during
// reset (§4.1 step 2-3), which in turn decides offset assignment order.
type SymbolOrder string

const (
	OrderOccurrence        SymbolOrder = "occurrence"
	OrderUsage             SymbolOrder = "usage"
	OrderPreprocessedUsage SymbolOrder = "preprocessedUsage"
)

// AdjustSorts selects whether monotonicity-helper clauses are injected
// before sort inference runs upstream. The core records which mode was
// requested but does not read it, and it never performs the injection
// itself.
type AdjustSorts string

const (
	AdjustOff       AdjustSorts = "off"
	AdjustPredicate AdjustSorts = "predicate"
	AdjustFunction  AdjustSorts = "function"
)

// Config is the immutable, fully-resolved option set for one core run.
type Config struct {
	EnumerationStrategy EnumerationStrategy
	StartSize           int
	SymmetryRatio       float64
	SizeWeightRatio     int
	WidgetOrders        WidgetOrder
	SymbolOrder         SymbolOrder
	DetectSortBounds    bool
	AdjustSorts         AdjustSorts
	KeepSbeamGenerators bool
	RandomTraversals    bool
}

// Option mutates a Config under construction.
type Option func(*Config)

// Default returns the baseline configuration: CONTOUR enumeration, start
// size 1, a conservative symmetry ratio, function-first ordering, and no
// randomisation.
func Default() *Config {
	return &Config{
		EnumerationStrategy: StrategyContour,
		StartSize:           1,
		SymmetryRatio:       1.0,
		SizeWeightRatio:     3,
		WidgetOrders:        OrderFunctionFirst,
		SymbolOrder:         OrderOccurrence,
		DetectSortBounds:    false,
		AdjustSorts:         AdjustOff,
		KeepSbeamGenerators: true,
		RandomTraversals:    false,
	}
}

// New builds a Config from Default() plus the given options.
func New(opts ...Option) *Config {
	c := Default()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithEnumerationStrategy(s EnumerationStrategy) Option {
	return func(c *Config) { c.EnumerationStrategy = s }
}

func WithStartSize(n int) Option { return func(c *Config) { c.StartSize = n } }

func WithSymmetryRatio(r float64) Option { return func(c *Config) { c.SymmetryRatio = r } }

func WithSizeWeightRatio(r int) Option { return func(c *Config) { c.SizeWeightRatio = r } }

func WithWidgetOrders(w WidgetOrder) Option { return func(c *Config) { c.WidgetOrders = w } }

func WithSymbolOrder(o SymbolOrder) Option { return func(c *Config) { c.SymbolOrder = o } }

func WithDetectSortBounds(b bool) Option { return func(c *Config) { c.DetectSortBounds = b } }

func WithAdjustSorts(a AdjustSorts) Option { return func(c *Config) { c.AdjustSorts = a } }

func WithKeepSbeamGenerators(b bool) Option {
	return func(c *Config) { c.KeepSbeamGenerators = b }
}

func WithRandomTraversals(b bool) Option {
	return func(c *Config) { c.RandomTraversals = b }
}

// Validate rejects option combinations that cannot be satisfied locally
// (the SMT strategy additionally requires a registered integer solver,
// checked by the enumerate package at construction time; Validate only
// catches combinations this package can judge on its own).
func (c *Config) Validate() error {
	if c.StartSize < 1 {
		return &errs.Inappropriate{Reason: "startSize must be >= 1"}
	}
	if c.SymmetryRatio < 0 {
		return &errs.Inappropriate{Reason: "symmetryRatio must be >= 0"}
	}
	if c.SizeWeightRatio < 1 {
		return &errs.Inappropriate{Reason: "sizeWeightRatio must be >= 1"}
	}
	switch c.EnumerationStrategy {
	case StrategyContour, StrategySBMEAM, StrategySMT:
	default:
		return &errs.Inappropriate{Reason: "unknown enumerationStrategy " + string(c.EnumerationStrategy)}
	}
	switch c.WidgetOrders {
	case OrderFunctionFirst, OrderArgumentFirst, OrderDiagonal:
	default:
		return &errs.Inappropriate{Reason: "unknown widgetOrders " + string(c.WidgetOrders)}
	}
	return nil
}

// Clone returns an independent copy (Config has no pointer-identity fields
// that need sharing semantics, so a value copy suffices).
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

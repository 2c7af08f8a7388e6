// Package main demonstrates basic finite-model-builder usage patterns.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/gofmb/pkg/config"
	"github.com/gitrdm/gofmb/pkg/driver"
	"github.com/gitrdm/gofmb/pkg/enumerate"
	"github.com/gitrdm/gofmb/pkg/fol"
	"github.com/gitrdm/gofmb/pkg/report"
	"github.com/gitrdm/gofmb/pkg/satface"
	"github.com/gitrdm/gofmb/pkg/sig"
)

func main() {
	fmt.Println("=== gofmb Examples ===")
	fmt.Println()

	propositionalUnsat()
	unaryConstantIdentity()
}

// propositionalUnsat builds §8 scenario 1: {p, ~p}, no sorts, which is
// UNSAT at the (empty) size vector and so is a refutation straight away.
func propositionalUnsat() {
	fmt.Println("1. Propositional UNSAT:")

	signature := &sig.Signature{
		Predicates: []*sig.PredSymbol{{Name: "p", Arity: 0, Sig: nil}},
	}
	ss := &sig.SortedSignature{
		Sig:                     signature,
		SourceSorts:             nil,
		DistinctSorts:           nil,
		VampireToDistinctParent: nil,
		DeletedFunctions:        map[int]*sig.DefinedSymbol{},
		DeletedPredicates:       map[int]*sig.DefinedSymbol{},
		PartiallyDeletedPredicates: map[int]*sig.DefinedSymbol{},
		TrivialPredicates:       map[int]*sig.DefinedSymbol{},
	}
	problem := &fol.Problem{
		Clauses: []*fol.Clause{
			{Literals: []fol.Literal{{Kind: fol.Pred, Positive: true, Pred: 0}}, VarSort: map[fol.VarID]int{}},
			{Literals: []fol.Literal{{Kind: fol.Pred, Positive: false, Pred: 0}}, VarSort: map[fol.VarID]int{}},
		},
	}

	result := run(problem, ss, config.New())
	fmt.Printf("   result: %s\n\n", result.Status)
}

// unaryConstantIdentity builds §8 scenario 2: constants a,b : sigma with
// clause {a != b}, which needs |sigma| >= 2 to be satisfiable.
func unaryConstantIdentity() {
	fmt.Println("2. Unary constant identity:")

	signature := &sig.Signature{
		Functions: []*sig.FuncSymbol{
			{Name: "a", Arity: 0, Sig: []int{0}},
			{Name: "b", Arity: 0, Sig: []int{0}},
		},
	}
	ss := &sig.SortedSignature{
		Sig:           signature,
		SourceSorts:   []*sig.SourceSort{{Name: "sigma", Bound: sig.Unbounded, Parent: 0}},
		DistinctSorts: []*sig.DistinctSort{{Name: "sigma", Min: 1, Max: sig.Unbounded, Size: 1}},
		VampireToDistinctParent: []int{0},
		SortedConstants: map[int][]int{0: {0, 1}},
		SortedFunctions: map[int][]int{},
		DeletedFunctions: map[int]*sig.DefinedSymbol{},
		DeletedPredicates: map[int]*sig.DefinedSymbol{},
		PartiallyDeletedPredicates: map[int]*sig.DefinedSymbol{},
		TrivialPredicates: map[int]*sig.DefinedSymbol{},
	}

	aResult, bResult := fol.VarID(0), fol.VarID(1)
	problem := &fol.Problem{
		Clauses: []*fol.Clause{
			{
				Literals: []fol.Literal{
					{Kind: fol.FuncEq, Positive: false, Func: 0, Result: aResult},
					{Kind: fol.FuncEq, Positive: false, Func: 1, Result: bResult},
					{Kind: fol.VarEq, Positive: false, X: aResult, Y: bResult},
				},
				VarSort: map[fol.VarID]int{aResult: 0, bResult: 0},
			},
		},
	}

	result := run(problem, ss, config.New(config.WithStartSize(1)))
	fmt.Printf("   result: %s\n", result.Status)
	if result.Model != nil {
		report.WriteModel(os.Stdout, ss, result)
	}
	fmt.Println()
}

func run(problem *fol.Problem, ss *sig.SortedSignature, cfg *config.Config) *driver.MainLoopResult {
	logger := hclog.New(&hclog.LoggerOptions{Name: "gofmb", Level: hclog.Warn})

	solver := satface.NewGophersatAdapter(logger)
	strategy, err := enumerate.New(cfg)
	if err != nil {
		return &driver.MainLoopResult{Status: driver.StatusInappropriate}
	}

	result, err := driver.Run(context.Background(), problem, ss, cfg, solver, strategy, nil, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return &driver.MainLoopResult{Status: driver.StatusInappropriate}
	}
	return result
}

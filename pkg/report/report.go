// Package report renders a driver.MainLoopResult as human-readable text,
// the witness format a command-line caller prints on SATISFIABLE.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/gitrdm/gofmb/pkg/driver"
	"github.com/gitrdm/gofmb/pkg/sig"
)

// WriteModel prints one satisfying interpretation: domain sizes, then every
// non-deleted constant, function, and predicate, then recovered deleted
// symbols. Map iteration is over sorted keys so output is deterministic.
func WriteModel(w io.Writer, ss *sig.SortedSignature, m *driver.MainLoopResult) error {
	if m.Status != driver.StatusSatisfiable || m.Model == nil {
		fmt.Fprintf(w, "%s\n", m.Status)
		return nil
	}
	mod := m.Model

	fmt.Fprintln(w, "SATISFIABLE")
	for s, d := range ss.DistinctSorts {
		fmt.Fprintf(w, "  |%s| = %d\n", d.Name, sizeOrReported(mod.Sizes, s, d.Size))
	}

	for _, fi := range sortedIntKeys(mod.Constants) {
		fmt.Fprintf(w, "  %s = %d\n", ss.Sig.Functions[fi].Name, mod.Constants[fi])
	}
	for _, fi := range sortedIntKeys(mod.Functions) {
		name := ss.Sig.Functions[fi].Name
		for _, k := range sortedStringKeys(mod.Functions[fi]) {
			fmt.Fprintf(w, "  %s%s = %d\n", name, k, mod.Functions[fi][k])
		}
	}
	for _, pi := range sortedIntKeys(mod.Propositions) {
		fmt.Fprintf(w, "  %s = %t\n", ss.Sig.Predicates[pi].Name, mod.Propositions[pi])
	}
	for _, pi := range sortedIntKeys(mod.Relations) {
		name := ss.Sig.Predicates[pi].Name
		for _, k := range sortedStringKeys(mod.Relations[pi]) {
			fmt.Fprintf(w, "  %s%s = %t\n", name, k, mod.Relations[pi][k])
		}
	}
	for _, fi := range sortedIntKeys(mod.DeletedFunctions) {
		fmt.Fprintf(w, "  %s = %d (recovered)\n", ss.Sig.Functions[fi].Name, mod.DeletedFunctions[fi])
	}
	for _, pi := range sortedIntKeys(mod.DeletedPredicates) {
		fmt.Fprintf(w, "  %s = %t (recovered)\n", ss.Sig.Predicates[pi].Name, mod.DeletedPredicates[pi])
	}
	if mod.Warnings != nil {
		fmt.Fprintf(w, "  warning: %s\n", mod.Warnings)
	}
	return nil
}

func sizeOrReported(sizes []int, idx, fallback int) int {
	if idx < len(sizes) {
		return sizes[idx]
	}
	return fallback
}

func sortedIntKeys[T any](m map[int]T) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sortedStringKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

//go:build !z3

package enumerate

import (
	"github.com/gitrdm/gofmb/pkg/config"
	"github.com/gitrdm/gofmb/pkg/errs"
)

// newSMT is the default (non-cgo) build: Mode B' requires linking against
// a real Z3 installation, so without the "z3" build tag it fails cleanly
// rather than silently falling back to a different strategy.
func newSMT(cfg *config.Config) (Strategy, error) {
	return nil, &errs.Inappropriate{Reason: "enumerationStrategy SMT requires building with -tags z3"}
}

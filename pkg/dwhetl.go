// Package dwhetl loads JSON song and event logs from object storage into
// a Redshift warehouse. Raw records go to staging tables first, then a star
// schema is populated from the staging tables.
package dwhetl

import (
	"context"

	"github.com/gnames/dwhetl/pkg/catalog"
	"github.com/gnames/dwhetl/pkg/mode"
)

var (
	// Version of dwhetl, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)

// Loader runs the staging and populate phases against the warehouse.
type Loader interface {
	// Load executes the staging list selected by the mode, then the
	// populate list. Abort mode returns without touching the warehouse.
	Load(ctx context.Context, m mode.RunMode) error

	// Plan returns the statements Load would execute for the mode,
	// in execution order.
	Plan(m mode.RunMode) ([]catalog.Step, error)

	// State returns the state reached by the latest run.
	State() State
}

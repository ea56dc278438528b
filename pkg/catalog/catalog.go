// Package catalog defines the Query Catalog: ordered lists of SQL
// statements that load staging tables and populate the star schema.
//
// Statement text is opaque to the rest of the application. Order inside
// a list is significant and is preserved exactly as declared.
package catalog

import (
	"strings"

	"github.com/gnames/dwhetl/pkg/mode"
)

// ListID identifies a statement list of the catalog.
type ListID string

const (
	// StagingFull loads staging tables from the complete dataset.
	StagingFull ListID = "staging_full"
	// StagingTest loads staging tables from a restricted dataset.
	StagingTest ListID = "staging_test"
	// Populate fills fact and dimension tables from staging tables.
	Populate ListID = "populate"
)

// Statement is one unit of warehouse work.
type Statement struct {
	// Name is a short label used in logs and plans, for example the
	// target table.
	Name string `yaml:"name"`

	// SQL is the statement text.
	SQL string `yaml:"sql"`
}

// StatementList is an ordered sequence of statements.
type StatementList struct {
	ID         ListID
	Statements []Statement
}

// Len returns the number of statements in the list.
func (l StatementList) Len() int {
	return len(l.Statements)
}

// Catalog holds the statement lists. StagingFull and StagingTest are
// never merged, Populate is shared by both modes.
type Catalog struct {
	StagingFull StatementList
	StagingTest StatementList
	Populate    StatementList
}

// New creates a Catalog from three statement slices.
func New(stagingFull, stagingTest, populate []Statement) *Catalog {
	return &Catalog{
		StagingFull: StatementList{ID: StagingFull, Statements: stagingFull},
		StagingTest: StatementList{ID: StagingTest, Statements: stagingTest},
		Populate:    StatementList{ID: Populate, Statements: populate},
	}
}

// Staging returns the staging list for the mode. The second value is
// false for modes that load nothing.
func (c *Catalog) Staging(m mode.RunMode) (StatementList, bool) {
	switch m {
	case mode.Full:
		return c.StagingFull, true
	case mode.Test:
		return c.StagingTest, true
	default:
		return StatementList{}, false
	}
}

// Lists returns all statement lists in their declaration order.
func (c *Catalog) Lists() []StatementList {
	return []StatementList{c.StagingFull, c.StagingTest, c.Populate}
}

// Validate checks that every statement has some SQL text.
// Empty lists are allowed.
func (c *Catalog) Validate() error {
	for _, l := range c.Lists() {
		for i, st := range l.Statements {
			if strings.TrimSpace(st.SQL) == "" {
				return EmptyStatementError(l.ID, i, st.Name)
			}
		}
	}
	return nil
}

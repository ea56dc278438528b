package ioload

import (
	"errors"
	"fmt"

	"github.com/gnames/dwhetl/pkg/catalog"
	"github.com/gnames/dwhetl/pkg/errcode"
	"github.com/gnames/gn"
)

// Op is the session operation that failed.
type Op string

const (
	OpExecute Op = "execute"
	OpCommit  Op = "commit"
)

// StatementError describes the statement that stopped a run.
type StatementError struct {
	// List is the catalog list of the statement.
	List catalog.ListID

	// Index is the 0-based position of the statement in its list
	// as declared in the catalog.
	Index int

	// Step is the 1-based position of the statement in the run.
	Step int

	// Name is the label of the statement.
	Name string

	// Op tells if execution or commit failed.
	Op Op

	// Err is the error reported by the warehouse.
	Err error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("step %d (%s[%d] %s): %s failed: %v",
		e.Step, e.List, e.Index, e.Name, e.Op, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// AsStatementError finds StatementError in the error chain.
func AsStatementError(err error) (*StatementError, bool) {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		err = gnErr.Err
	}

	var res *StatementError
	if errors.As(err, &res) {
		return res, true
	}
	return nil, false
}

// statementError wraps a failed statement for printing to the user.
func statementError(st catalog.Step, op Op, err error) error {
	msg := `<warn>Statement <em>%d</em> (%s) of the <em>%s</em> list failed ` +
		`at step %d, load stopped</warn>
Statements committed before this step stay in the warehouse.`
	vars := []any{st.Index, st.Name, st.List, st.Seq}

	return &gn.Error{
		Code: errcode.LoadStatementError,
		Msg:  msg,
		Vars: vars,
		Err: &StatementError{
			List:  st.List,
			Index: st.Index,
			Step:  st.Seq,
			Name:  st.Name,
			Op:    op,
			Err:   err,
		},
	}
}

// NoCatalogError is returned when the loader has no statements to run.
func NoCatalogError() error {
	msg := "Query catalog is not loaded"

	return &gn.Error{
		Code: errcode.LoadNoCatalogError,
		Msg:  msg,
		Err:  errors.New("catalog is nil"),
	}
}

package catalog

import (
	"fmt"

	"github.com/gnames/dwhetl/pkg/errcode"
	"github.com/gnames/gn"
)

// EmptyStatementError creates an error for a statement without SQL.
func EmptyStatementError(list ListID, idx int, name string) error {
	msg := `Statement <em>%d</em> (%s) of the <em>%s</em> list has no SQL`
	vars := []any{idx, name, list}

	return &gn.Error{
		Code: errcode.CatalogInvalidError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("empty SQL in %s[%d] %q",
			list, idx, name),
	}
}

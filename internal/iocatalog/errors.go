package iocatalog

import (
	"fmt"

	"github.com/gnames/dwhetl/pkg/catalog"
	"github.com/gnames/dwhetl/pkg/errcode"
	"github.com/gnames/gn"
)

// ReadError is returned when catalog file cannot be read.
func ReadError(path string, err error) error {
	msg := "Cannot read query catalog <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.CatalogReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read catalog %s: %w", path, err),
	}
}

// ParseError is returned for malformed catalog YAML.
func ParseError(err error) error {
	msg := `<title>Invalid Query Catalog</title>

<warn>catalog.yaml is not valid.</warn>

Expected top-level keys are <em>staging_full</em>, <em>staging_test</em>
and <em>populate</em>, each a list of entries with <em>name</em> and
<em>sql</em> fields.`

	return &gn.Error{
		Code: errcode.CatalogParseError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot parse catalog: %w", err),
	}
}

// RenderError is returned when SQL template of a statement fails.
func RenderError(
	list catalog.ListID,
	idx int,
	name string,
	err error,
) error {
	msg := "Cannot render SQL of statement <em>%d</em> (%s) in <em>%s</em>"
	vars := []any{idx, name, list}

	return &gn.Error{
		Code: errcode.CatalogRenderError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot render %s[%d] %q: %w",
			list, idx, name, err),
	}
}

package iosources

import (
	"errors"
	"fmt"

	"github.com/gnames/dwhetl/pkg/errcode"
	"github.com/gnames/gn"
)

var errNoBucket = errors.New("bucket is missing")

func errNotS3(scheme string) error {
	return fmt.Errorf("expected s3:// scheme, got %q", scheme)
}

// PathError is returned for a source location that is not an S3 URI.
func PathError(path string, err error) error {
	msg := "Source location <em>%s</em> is not a valid s3:// path"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.SourcesPathError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid source path %q: %w", path, err),
	}
}

// ClientError is returned when AWS configuration cannot be loaded.
func ClientError(err error) error {
	msg := "Cannot configure S3 client, check AWS credentials"

	return &gn.Error{
		Code: errcode.SourcesCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot load AWS config: %w", err),
	}
}

// CheckError is returned when a source location cannot be listed.
func CheckError(path string, err error) error {
	msg := `<title>Source Check Failed</title>

<warn>Cannot list <em>%s</em>.</warn>

<em>How to fix:</em>
  1. Check the <em>sources</em> section of ~/.config/dwhetl/config.yaml
  2. Check AWS credentials and region
  3. Run without --check-sources to let the warehouse read the data`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.SourcesCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot list %s: %w", path, err),
	}
}

// EmptyError is returned when a source location has no objects.
func EmptyError(path string) error {
	msg := "Source location <em>%s</em> has no data"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.SourcesEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no objects at %s", path),
	}
}

package iowarehouse

import (
	"fmt"
	"runtime"

	"github.com/gnames/dwhetl/pkg/errcode"
	"github.com/gnames/gn"
)

// ConnectionError is returned when the warehouse cannot be reached.
func ConnectionError(target string, err error) error {
	msg := `<title>Warehouse Connection Failed</title>

<warn>Could not connect to <em>%s</em>.</warn>

<em>Possible causes:</em>
  • The cluster is paused or not reachable from this network
  • The security group does not allow the client address
  • Warehouse settings in config.yaml are incorrect

<em>How to fix:</em>
  1. Check the cluster status in the AWS console
  2. Review the <em>warehouse</em> section of ~/.config/dwhetl/config.yaml
  3. Override settings with DWHETL_WAREHOUSE_* environment variables`
	vars := []any{target}

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s: %w",
			fn.Name(), target, err),
	}
}

// NotConnectedError is returned when a closed session is used.
func NotConnectedError() error {
	msg := "Warehouse session is closed"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to warehouse"),
	}
}

// CursorClosedError is returned when a closed cursor is used.
func CursorClosedError() error {
	msg := "Warehouse cursor is closed"

	return &gn.Error{
		Code: errcode.DBCursorClosedError,
		Msg:  msg,
		Err:  fmt.Errorf("cursor is closed"),
	}
}

// CloseError is returned when releasing the session fails.
func CloseError(err error) error {
	msg := "Cannot release the warehouse connection"

	return &gn.Error{
		Code: errcode.DBCloseError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot close warehouse session: %w", err),
	}
}

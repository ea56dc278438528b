package mode

import (
	"errors"
	"fmt"

	"github.com/gnames/dwhetl/pkg/errcode"
	"github.com/gnames/gn"
)

var (
	// ErrInvalidArgument is wrapped by errors about an unknown mode token.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTooManyArguments is wrapped by errors about extra mode tokens.
	ErrTooManyArguments = errors.New("too many arguments")
)

// InvalidArgumentError creates an error for an argument that is neither
// 'all' nor 'test'.
func InvalidArgumentError(arg string) error {
	msg := `Invalid argument <em>%s</em>. Valid arguments are 'test' or 'all'.`
	vars := []any{arg}

	return &gn.Error{
		Code: errcode.ModeInvalidArgumentError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"%w: %q, valid arguments are 'test' or 'all'",
			ErrInvalidArgument, arg),
	}
}

// TooManyArgumentsError creates an error for more than one argument.
func TooManyArgumentsError(args []string) error {
	msg := `Too many arguments (<em>%d</em>). Valid arguments are 'test' or 'all'.`
	vars := []any{len(args)}

	return &gn.Error{
		Code: errcode.ModeTooManyArgumentsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"%w: got %d, valid arguments are 'test' or 'all'",
			ErrTooManyArguments, len(args)),
	}
}

// PromptError creates an error for a failed interactive question.
func PromptError(err error) error {
	msg := "Cannot read the answer"

	return &gn.Error{
		Code: errcode.ModePromptError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot read answer: %w", err),
	}
}

// IsInvalidArgument reports whether err was caused by an unknown mode
// token.
func IsInvalidArgument(err error) bool {
	return hasCode(err, errcode.ModeInvalidArgumentError)
}

// IsTooManyArguments reports whether err was caused by extra mode tokens.
func IsTooManyArguments(err error) bool {
	return hasCode(err, errcode.ModeTooManyArgumentsError)
}

func hasCode(err error, code gn.ErrorCode) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code == code
	}
	return false
}

// Package mode resolves the run mode from the command line arguments or,
// when there are none, from a single interactive question.
//
// The package does no I/O by itself. The question is asked through a
// Prompt callback supplied by the caller.
package mode

import (
	"errors"
	"io"
	"strings"
)

// RunMode determines which staging list is loaded, if any.
type RunMode int

const (
	// Abort ends the run without touching the warehouse.
	Abort RunMode = iota
	// Full loads the complete dataset.
	Full
	// Test loads a restricted dataset.
	Test
)

// PromptText is the question asked when no argument is given.
const PromptText = "Do you want to load all of the data, a test set, or quit? [all/test/quit]"

// Tokens recognized both as arguments and as interactive answers.
const (
	TokenAll  = "all"
	TokenTest = "test"
	TokenQuit = "quit"
)

var modeNames = map[RunMode]string{
	Abort: "abort",
	Full:  "full",
	Test:  "test",
}

func (m RunMode) String() string {
	if res, ok := modeNames[m]; ok {
		return res
	}
	return "unknown"
}

// Prompt asks the user a question and returns the raw answer.
type Prompt func(question string) (string, error)

// Select resolves the run mode.
//
// With no arguments the question is asked once. The answer 'all' or 'test'
// selects the mode, anything else aborts silently.
// With one argument it has to be 'all' or 'test'.
// More than one argument is an error.
func Select(args []string, ask Prompt) (RunMode, error) {
	switch len(args) {
	case 0:
		return fromPrompt(ask)
	case 1:
		if res, ok := fromToken(args[0]); ok {
			return res, nil
		}
		return Abort, InvalidArgumentError(args[0])
	default:
		return Abort, TooManyArgumentsError(args)
	}
}

func fromPrompt(ask Prompt) (RunMode, error) {
	if ask == nil {
		return Abort, nil
	}

	answer, err := ask(PromptText)
	if err != nil && !errors.Is(err, io.EOF) {
		return Abort, PromptError(err)
	}

	// only the line terminator is removed, ' all' is not 'all'
	answer = strings.TrimRight(answer, "\r\n")
	if res, ok := fromToken(answer); ok {
		return res, nil
	}
	return Abort, nil
}

func fromToken(s string) (RunMode, bool) {
	switch s {
	case TokenAll:
		return Full, true
	case TokenTest:
		return Test, true
	default:
		return Abort, false
	}
}

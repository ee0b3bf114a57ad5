// Package shell turns an input line into a pipeline tree.
//
// This is a small subset of
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html
//
// 1. The shell breaks the input into words, honoring quotes; see Tokenize.
// Operators must be separated from words by blanks.
//
// 2. The words are split on the pipe operator into stages.
//
// 3. Redirection operators and their operands are removed from each stage's
// argument list; see ExtractRedirections.
//
// Expansions, compound commands and lists are not supported.
package shell

import (
	"errors"
	"fmt"

	"github.com/anmitsu/go-shlex"
)

const (
	tokenPipe     = "|"
	tokenRedirIn  = "<"
	tokenRedirOut = ">"
	tokenRedirErr = "2>"
)

var (
	// ErrEmptyCommand is returned for a stage with no program name.
	ErrEmptyCommand = errors.New("missing command")
	// ErrMissingRedirectTarget is returned when a redirection operator is
	// the last word of a stage.
	ErrMissingRedirectTarget = errors.New("redirection without a file")
	// ErrDuplicateRedirect is returned when a stream is redirected twice.
	ErrDuplicateRedirect = errors.New("stream redirected more than once")
)

// SyntaxError reports a malformed line.
type SyntaxError struct {
	Token string
	Err   error
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("syntax error: %v", e.Err)
	}
	return fmt.Sprintf("syntax error near %q: %v", e.Token, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Tokenize splits a line into words using POSIX quoting rules.
func Tokenize(line string) ([]string, error) {
	tokens, err := shlex.Split(line, true)
	if err != nil {
		return nil, &SyntaxError{Err: err}
	}
	return tokens, nil
}

// Parse tokenizes the line and builds its command tree. A blank line
// returns a nil command and no error.
func Parse(line string) (*Command, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	return Construct(tokens)
}

// Construct builds a left-associative tree from the tokens, so that
// "a | b | c" becomes ((a | b) | c).
func Construct(tokens []string) (*Command, error) {
	var root *Command
	start := 0
	for i := 0; i <= len(tokens); i++ {
		if i < len(tokens) && tokens[i] != tokenPipe {
			continue
		}

		stage, err := newSimpleCommand(tokens[start:i])
		if errors.Is(err, ErrEmptyCommand) && hasPipe(tokens) {
			return nil, &SyntaxError{Token: tokenPipe, Err: err}
		}
		if err != nil {
			return nil, wrapSyntax(err)
		}

		leaf := NewLeaf(stage)
		if root == nil {
			root = leaf
		} else {
			root = NewPipe(root, leaf)
		}
		start = i + 1
	}
	return root, nil
}

func wrapSyntax(err error) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		return err
	}
	return &SyntaxError{Err: err}
}

func hasPipe(tokens []string) bool {
	for _, tok := range tokens {
		if tok == tokenPipe {
			return true
		}
	}
	return false
}

func newSimpleCommand(tokens []string) (*SimpleCommand, error) {
	argv, in, out, errTarget, err := ExtractRedirections(tokens)
	if err != nil {
		return nil, err
	}
	return &SimpleCommand{Argv: argv, In: in, Out: out, Err: errTarget}, nil
}

// ExtractRedirections removes "<", ">" and "2>" along with their operands
// from tokens. It returns the remaining arguments and the target for each
// stream, empty if the stream is not redirected.
func ExtractRedirections(tokens []string) (argv []string, in, out, errTarget string, err error) {
	targets := map[string]*string{
		tokenRedirIn:  &in,
		tokenRedirOut: &out,
		tokenRedirErr: &errTarget,
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		target, ok := targets[tok]
		if !ok {
			argv = append(argv, tok)
			continue
		}

		if i+1 >= len(tokens) || isOperator(tokens[i+1]) {
			return nil, "", "", "", &SyntaxError{Token: tok, Err: ErrMissingRedirectTarget}
		}
		if *target != "" {
			return nil, "", "", "", &SyntaxError{Token: tok, Err: ErrDuplicateRedirect}
		}
		*target = tokens[i+1]
		i++
	}

	if len(argv) == 0 {
		return nil, "", "", "", ErrEmptyCommand
	}
	return argv, in, out, errTarget, nil
}

func isOperator(tok string) bool {
	switch tok {
	case tokenPipe, tokenRedirIn, tokenRedirOut, tokenRedirErr:
		return true
	}
	return false
}

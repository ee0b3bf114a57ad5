package core

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/josephlewis42/minish/core/shell"
)

const (
	// StatusLaunchFailed is the status of a stage whose program could not
	// be started, or that hit a pipe error.
	StatusLaunchFailed = 1
	// StatusRedirectFailed is the status of a stage whose redirection
	// targets could not be opened.
	StatusRedirectFailed = 255
)

// Outcome tells the read loop whether to keep going.
type Outcome int

const (
	// Continue reads the next line.
	Continue Outcome = iota
	// Terminate ends the read loop.
	Terminate
)

// Result is the outcome of one stage.
type Result struct {
	Argv   []string
	Status int
	Err    error
}

// Executor runs command trees against the real OS.
type Executor struct {
	WorkDir *WorkDir
	Stdio   Stdio
}

// NewExecutor creates an executor rooted at the current directory using
// stdio for every command it runs.
func NewExecutor(stdio Stdio) (*Executor, error) {
	wd, err := NewWorkDir()
	if err != nil {
		return nil, err
	}
	return &Executor{WorkDir: wd, Stdio: stdio}, nil
}

// Execute runs a parsed line. Trees with a pipe go to RunPipeline, single
// commands to RunSimple.
func (e *Executor) Execute(c *shell.Command) (Outcome, []Result) {
	if c.Kind() == shell.Leaf {
		outcome, result := e.RunSimple(c.Simple())
		return outcome, []Result{result}
	}
	return Continue, e.RunPipeline(c)
}

// RunSimple runs a command without pipes. Builtins run in the shell
// process; anything else runs in a child that is waited for before
// returning.
func (e *Executor) RunSimple(sc *shell.SimpleCommand) (Outcome, Result) {
	switch sc.Builtin() {
	case shell.BuiltinChangeDir:
		result := Result{Argv: sc.Argv}
		if err := ChangeDir(e.WorkDir, sc.Argv); err != nil {
			fmt.Fprintf(e.Stdio.diagnostics(), "cd: %v\n", err)
			result.Status = 1
			result.Err = err
		}
		return Continue, result

	case shell.BuiltinTerminate:
		return Terminate, Result{Argv: sc.Argv}
	}

	return Continue, e.startLeaf(sc, e.Stdio).wait()
}

// RunPipeline starts every stage of the tree and waits for all of them.
// Results are in left to right stage order.
func (e *Executor) RunPipeline(c *shell.Command) []Result {
	stages := e.start(c, e.Stdio)

	results := make([]Result, len(stages))
	for i, st := range stages {
		results[i] = st.wait()
	}
	return results
}

// start spawns the subtree rooted at c with the given streams. Each pipe is
// created here and both ends are closed once the two sides have started, so
// only the stages themselves hold them.
func (e *Executor) start(c *shell.Command, stdio Stdio) []*stage {
	if c.Kind() == shell.Leaf {
		return []*stage{e.startLeaf(c.Simple(), stdio)}
	}

	r, w, err := os.Pipe()
	if err != nil {
		fmt.Fprintf(stdio.diagnostics(), "pipe: %v\n", err)
		return failedStages(c, StatusLaunchFailed, err)
	}

	left := stdio
	left.Stdout = w
	right := stdio
	right.Stdin = r

	stages := e.start(c.Left(), left)
	stages = append(stages, e.start(c.Right(), right)...)

	r.Close()
	w.Close()
	return stages
}

// startLeaf applies redirection and launches the program. Builtin names
// are not special-cased and are looked up like any other program.
func (e *Executor) startLeaf(sc *shell.SimpleCommand, stdio Stdio) *stage {
	st := &stage{stdio: stdio, result: Result{Argv: sc.Argv}}

	redirected, opened, err := ApplyRedirections(sc, stdio)
	if err != nil {
		fmt.Fprintf(stdio.diagnostics(), "%s: %v\n", sc.Argv[0], err)
		st.result.Status = StatusRedirectFailed
		st.result.Err = err
		return st
	}
	defer opened.Close()

	cmd, err := Launch(sc.Argv, redirected)
	if err != nil {
		fmt.Fprintln(redirected.diagnostics(), err)
		st.result.Status = StatusLaunchFailed
		st.result.Err = err
		return st
	}

	st.cmd = cmd
	return st
}

func failedStages(c *shell.Command, status int, err error) []*stage {
	var out []*stage
	for _, sc := range c.Stages() {
		out = append(out, &stage{result: Result{Argv: sc.Argv, Status: status, Err: err}})
	}
	return out
}

// stage is one process of a pipeline. cmd is nil if it never started.
type stage struct {
	cmd    *exec.Cmd
	stdio  Stdio
	result Result
}

func (s *stage) wait() Result {
	if s.cmd == nil {
		return s.result
	}

	err := s.cmd.Wait()
	s.cmd = nil

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		s.result.Status = exitErr.ExitCode()
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			s.result.Status = 128 + int(ws.Signal())
			s.result.Err = err
			// SIGPIPE: the next stage exited before reading all of its input.
			if ws.Signal() != syscall.SIGPIPE {
				fmt.Fprintf(s.stdio.diagnostics(), "%s: exited abnormally: %v\n", s.result.Argv[0], err)
			}
		}
	default:
		s.result.Status = StatusLaunchFailed
		s.result.Err = err
		fmt.Fprintf(s.stdio.diagnostics(), "%s: %v\n", s.result.Argv[0], err)
	}
	return s.result
}

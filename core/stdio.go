package core

import (
	"io"
	"os"
	"os/exec"
)

// Stdio holds the files a process is started with in slots 0, 1 and 2.
// These are the only descriptors a child receives.
type Stdio struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// OSStdio returns the streams of the current process.
func OSStdio() Stdio {
	return Stdio{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// attach sets the command's streams. Nil slots are left unset so the child
// gets the null device rather than a nil *os.File wrapped in an interface.
func (s Stdio) attach(cmd *exec.Cmd) {
	if s.Stdin != nil {
		cmd.Stdin = s.Stdin
	}
	if s.Stdout != nil {
		cmd.Stdout = s.Stdout
	}
	if s.Stderr != nil {
		cmd.Stderr = s.Stderr
	}
}

// diagnostics is where messages about this process's streams are written.
func (s Stdio) diagnostics() io.Writer {
	if s.Stderr == nil {
		return os.Stderr
	}
	return s.Stderr
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

// LaunchError reports a program that could not be started.
type LaunchError struct {
	Name string
	Err  error
}

func (e *LaunchError) Error() string {
	switch {
	case errors.Is(e.Err, ErrNotFound):
		return fmt.Sprintf("%s: command not found", e.Name)
	case errors.Is(e.Err, fs.ErrPermission):
		return fmt.Sprintf("%s: permission denied", e.Name)
	default:
		return fmt.Sprintf("%s: %v", e.Name, e.Err)
	}
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Launch starts argv[0], searching PATH unless the name contains a slash,
// with argv as its arguments and stdio as its only open files. A non-nil
// command is returned only if the program is running.
func Launch(argv []string, stdio Stdio) (*exec.Cmd, error) {
	if len(argv) == 0 {
		return nil, &LaunchError{Err: ErrNotFound}
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, &LaunchError{Name: argv[0], Err: err}
	}

	cmd := &exec.Cmd{
		Path: path,
		Args: argv,
	}
	stdio.attach(cmd)

	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Name: argv[0], Err: err}
	}
	return cmd, nil
}

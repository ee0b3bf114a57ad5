package core

import (
	"os"
)

// EnvPWD is exported to children after every directory change.
const EnvPWD = "PWD"

// WorkDir tracks the process-wide working directory. It is set once at
// startup and changed only by Chdir; children inherit the directory the
// shell is in when they are started.
type WorkDir struct {
	path string
}

// NewWorkDir captures the current working directory.
func NewWorkDir() (*WorkDir, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return &WorkDir{path: wd}, nil
}

// Get returns the directory as it was last set, without normalization.
func (w *WorkDir) Get() string {
	return w.path
}

// Chdir changes the process directory and records path verbatim.
func (w *WorkDir) Chdir(path string) error {
	if err := os.Chdir(path); err != nil {
		return err
	}
	w.path = path
	return os.Setenv(EnvPWD, path)
}

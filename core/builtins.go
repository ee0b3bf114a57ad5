package core

import (
	"errors"

	"github.com/josephlewis42/minish/core/shell"
)

// ErrInvalidArguments is returned when cd is called without a path.
var ErrInvalidArguments = errors.New("invalid arguments")

// ChangeDir implements the cd builtin. argv[0] is the builtin name and
// argv[1] the target; further arguments are ignored. Relative targets are
// appended to the current directory with a "/" and are not cleaned.
func ChangeDir(wd *WorkDir, argv []string) error {
	if wd == nil || len(argv) < 2 {
		return ErrInvalidArguments
	}

	path := argv[1]
	if shell.IsRelative(path) {
		path = wd.Get() + "/" + path
	}

	return wd.Chdir(path)
}

package core

import (
	"fmt"
	"io"
	"os"

	"github.com/josephlewis42/minish/core/shell"
)

const (
	// Input must already exist.
	redirectInFlags = os.O_RDWR
	// Output and error files must not exist yet.
	redirectOutFlags = os.O_RDWR | os.O_CREATE | os.O_EXCL
	redirectPerm     = 0600
)

// RedirectError reports a redirection target that could not be opened.
type RedirectError struct {
	Stream string
	Err    error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("cannot redirect %s: %v", e.Stream, e.Err)
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}

// ApplyRedirections opens the command's redirection targets and returns
// stdio with the matching slots replaced. stdio should already carry any
// pipe ends, so a file target takes precedence over a pipe.
//
// The returned closer owns the opened files and must be closed once the
// child has started. On error nothing is left open.
func ApplyRedirections(sc *shell.SimpleCommand, stdio Stdio) (Stdio, io.Closer, error) {
	var opened listCloser

	for _, r := range []struct {
		stream string
		target string
		flags  int
		slot   **os.File
	}{
		{"stdin", sc.In, redirectInFlags, &stdio.Stdin},
		{"stdout", sc.Out, redirectOutFlags, &stdio.Stdout},
		{"stderr", sc.Err, redirectOutFlags, &stdio.Stderr},
	} {
		if r.target == "" {
			continue
		}

		fd, err := os.OpenFile(r.target, r.flags, redirectPerm)
		if err != nil {
			opened.Close()
			return Stdio{}, nil, &RedirectError{Stream: r.stream, Err: err}
		}
		opened = append(opened, fd)
		*r.slot = fd
	}

	return stdio, opened, nil
}

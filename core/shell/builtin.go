package shell

import "strings"

// Builtin tags commands the shell runs itself.
type Builtin int

const (
	BuiltinNone Builtin = iota
	BuiltinChangeDir
	BuiltinTerminate
)

// Builtins maps builtin names to their tag.
var Builtins = map[string]Builtin{
	"cd":   BuiltinChangeDir,
	"exit": BuiltinTerminate,
}

// ClassifyBuiltin returns the builtin named by token, if any.
func ClassifyBuiltin(token string) Builtin {
	return Builtins[token]
}

func (b Builtin) String() string {
	switch b {
	case BuiltinChangeDir:
		return "cd"
	case BuiltinTerminate:
		return "exit"
	default:
		return "none"
	}
}

// IsRelative reports whether path is relative to the working directory.
func IsRelative(path string) bool {
	return !strings.HasPrefix(path, "/")
}

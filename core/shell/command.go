package shell

import (
	"fmt"
	"io"
	"strings"
)

// Operator joins the two children of an internal command node.
type Operator string

const (
	// OpPipe connects the left stage's stdout to the right stage's stdin.
	OpPipe Operator = "|"
)

// SimpleCommand is one program invocation with optional redirection targets.
// An empty target means the stream is inherited.
type SimpleCommand struct {
	Argv []string

	In  string
	Out string
	Err string
}

// Builtin classifies the command's first argument.
func (s *SimpleCommand) Builtin() Builtin {
	if s == nil || len(s.Argv) == 0 {
		return BuiltinNone
	}
	return ClassifyBuiltin(s.Argv[0])
}

func (s *SimpleCommand) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(s.Argv, " "))
	for _, r := range []struct {
		op     string
		target string
	}{
		{"<", s.In},
		{">", s.Out},
		{"2>", s.Err},
	} {
		if r.target != "" {
			fmt.Fprintf(&sb, " %s %s", r.op, r.target)
		}
	}
	return sb.String()
}

// Kind discriminates leaf and internal command nodes.
type Kind int

const (
	Leaf Kind = iota
	Pipe
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Pipe:
		return "pipe"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Command is a node in a pipeline tree. Nodes are built with NewLeaf or
// NewPipe, so a node is always either a leaf or an operator with two
// children.
type Command struct {
	kind Kind

	simple *SimpleCommand

	op    Operator
	left  *Command
	right *Command
}

// NewLeaf wraps a simple command.
func NewLeaf(sc *SimpleCommand) *Command {
	return &Command{kind: Leaf, simple: sc}
}

// NewPipe joins two subtrees with the pipe operator.
func NewPipe(left, right *Command) *Command {
	return &Command{kind: Pipe, op: OpPipe, left: left, right: right}
}

func (c *Command) Kind() Kind         { return c.kind }
func (c *Command) Operator() Operator { return c.op }
func (c *Command) Left() *Command     { return c.left }
func (c *Command) Right() *Command    { return c.right }

// Simple returns the wrapped command of a leaf, or nil for internal nodes.
func (c *Command) Simple() *SimpleCommand {
	return c.simple
}

// Stages returns the leaves of the tree from left to right.
func (c *Command) Stages() []*SimpleCommand {
	if c == nil {
		return nil
	}
	if c.kind == Leaf {
		return []*SimpleCommand{c.simple}
	}
	return append(c.left.Stages(), c.right.Stages()...)
}

func (c *Command) String() string {
	if c.kind == Leaf {
		return c.simple.String()
	}
	return fmt.Sprintf("(%s %s %s)", c.left, c.op, c.right)
}

// Fprint writes an indented view of the tree, one node per line.
func Fprint(w io.Writer, c *Command) {
	fprint(w, c, 0)
}

func fprint(w io.Writer, c *Command, depth int) {
	indent := strings.Repeat("  ", depth)
	if c.kind == Pipe {
		fmt.Fprintf(w, "%s%s\n", indent, c.op)
		fprint(w, c.left, depth+1)
		fprint(w, c.right, depth+1)
		return
	}

	sc := c.simple
	fmt.Fprintf(w, "%sargv: %q\n", indent, sc.Argv)
	if sc.In != "" {
		fmt.Fprintf(w, "%s  in: %s\n", indent, sc.In)
	}
	if sc.Out != "" {
		fmt.Fprintf(w, "%s  out: %s\n", indent, sc.Out)
	}
	if sc.Err != "" {
		fmt.Fprintf(w, "%s  err: %s\n", indent, sc.Err)
	}
}

package core

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/shell"
)

// LineReader supplies input lines, readline.Instance in production.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

var _ LineReader = (*readline.Instance)(nil)

// Shell is the interactive read loop around an Executor.
type Shell struct {
	Executor *Executor
	Readline LineReader
	Config   *config.Configuration
	Log      *log.Logger

	// Events is optional, nil disables event logging.
	Events *logger.SessionLogger

	dirColor *color.Color
}

// NewShell creates an interactive shell reading from stdio.Stdin.
func NewShell(cfg *config.Configuration, stdio Stdio, events *logger.SessionLogger, lg *log.Logger) (*Shell, error) {
	executor, err := NewExecutor(stdio)
	if err != nil {
		return nil, err
	}

	rlConfig := &readline.Config{
		Stdin:        stdio.Stdin,
		Stdout:       stdio.Stdout,
		Stderr:       stdio.Stderr,
		HistoryFile:  cfg.HistoryPath(),
		HistoryLimit: cfg.HistoryLimit,
	}

	if err := rlConfig.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, err
	}

	return &Shell{
		Executor: executor,
		Readline: rl,
		Config:   cfg,
		Log:      lg,
		Events:   events,
	}, nil
}

func (s *Shell) promptColor() *color.Color {
	if s.dirColor == nil {
		s.dirColor = color.New(color.FgBlue, color.Bold)
		switch s.Config.Color {
		case config.ColorAlways:
			s.dirColor.EnableColor()
		case config.ColorNever:
			s.dirColor.DisableColor()
		}
	}
	return s.dirColor
}

// Prompt shows the working directory followed by the configured delimiter.
func (s *Shell) Prompt() string {
	return s.promptColor().Sprint(s.Executor.WorkDir.Get()) + s.Config.PromptDelimiter
}

// Run reads and executes lines until exit or end of input. It returns the
// shell's exit status.
func (s *Shell) Run() int {
	for {
		s.Readline.SetPrompt(s.Prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return 0 // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			s.Log.Printf("Error readline: %v", err)
			return 1

		case len(strings.TrimSpace(line)) == 0:
			continue // empty line
		}

		if s.RunLine(line) == Terminate {
			return 0
		}
	}
}

// RunLine parses and executes a single line.
func (s *Shell) RunLine(line string) Outcome {
	cmd, err := shell.Parse(line)
	if err != nil {
		fmt.Fprintf(s.Executor.Stdio.diagnostics(), "minish: %v\n", err)
		return Continue
	}
	if cmd == nil {
		return Continue
	}

	dir := s.Executor.WorkDir.Get()
	start := time.Now()
	outcome, results := s.Executor.Execute(cmd)
	s.record(dir, line, cmd, start, results)

	return outcome
}

func (s *Shell) record(dir, line string, cmd *shell.Command, start time.Time, results []Result) {
	if s.Events == nil {
		return
	}

	ev := &logger.CommandEvent{
		Time:     start,
		Dir:      dir,
		Line:     line,
		Tree:     cmd.String(),
		Duration: time.Since(start),
	}
	for _, r := range results {
		st := logger.StageEvent{Argv: r.Argv, Status: r.Status}
		if r.Err != nil {
			st.Error = r.Err.Error()
		}
		ev.Stages = append(ev.Stages, st)
	}

	if err := s.Events.RecordCommand(ev); err != nil {
		s.Log.Printf("couldn't record event: %v", err)
	}
}

// Close releases the line reader.
func (s *Shell) Close() error {
	return s.Readline.Close()
}

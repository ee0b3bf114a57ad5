package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/josephlewis42/minish/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestBuiltinsCommand(t *testing.T) {
	assert.Equal(t, "cd\nexit\n", runRoot(t, "builtins"))
}

func TestParseCommand(t *testing.T) {
	got := runRoot(t, "parse", "cat < in | wc -l > out")
	assert.Equal(t, "|\n  argv: [\"cat\"]\n    in: in\n  argv: [\"wc\" \"-l\"]\n    out: out\n", got)
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".minish")

	runRoot(t, "--config", dir, "init")

	_, err := os.Stat(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err)
}

func TestLogsCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	fd, err := os.Create(path)
	require.NoError(t, err)

	session := logger.NewJsonLinesLogRecorder(fd).NewSession()
	require.NoError(t, session.RecordCommand(&logger.CommandEvent{
		Time: time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC),
		Dir:  "/tmp",
		Line: "ls | wc",
		Tree: "(ls | wc)",
		Stages: []logger.StageEvent{
			{Argv: []string{"ls"}, Status: 0},
			{Argv: []string{"wc"}, Status: 1, Error: "boom"},
		},
	}))
	require.NoError(t, fd.Close())

	t.Run("cat", func(t *testing.T) {
		assert.Equal(t, "2021-01-02T03:04:05Z /tmp> ls | wc [0 1]\n", runRoot(t, "logs", "cat", path))
	})

	t.Run("report", func(t *testing.T) {
		got := runRoot(t, "logs", "report", path)
		assert.Contains(t, got, `"log_entries": 1`)
	})
}

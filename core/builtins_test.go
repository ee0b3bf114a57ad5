package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the process into a fresh directory for the duration of
// the test and returns a WorkDir tracking it.
func chdirTemp(t *testing.T) (*WorkDir, string) {
	t.Helper()

	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	origPWD, hadPWD := os.LookupEnv(EnvPWD)
	t.Cleanup(func() {
		os.Chdir(orig)
		if hadPWD {
			os.Setenv(EnvPWD, origPWD)
		} else {
			os.Unsetenv(EnvPWD)
		}
	})

	wd := &WorkDir{}
	require.NoError(t, wd.Chdir(dir))
	return wd, dir
}

func assertInDir(t *testing.T, expected string) {
	t.Helper()

	actual, err := os.Getwd()
	require.NoError(t, err)
	expectedInfo, err := os.Stat(expected)
	require.NoError(t, err)
	actualInfo, err := os.Stat(actual)
	require.NoError(t, err)
	assert.True(t, os.SameFile(expectedInfo, actualInfo), "in %q, want %q", actual, expected)
}

func TestNewWorkDir(t *testing.T) {
	_, dir := chdirTemp(t)

	wd, err := NewWorkDir()
	require.NoError(t, err)
	assertInDir(t, wd.Get())
	assertInDir(t, dir)
}

func TestChangeDirAbsolute(t *testing.T) {
	wd, dir := chdirTemp(t)
	target := filepath.Join(dir, "abs")
	require.NoError(t, os.Mkdir(target, 0700))

	require.NoError(t, ChangeDir(wd, []string{"cd", target}))

	assert.Equal(t, target, wd.Get())
	assert.Equal(t, target, os.Getenv(EnvPWD))
	assertInDir(t, target)
}

func TestChangeDirRelative(t *testing.T) {
	wd, dir := chdirTemp(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0700))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c"), 0700))

	require.NoError(t, ChangeDir(wd, []string{"cd", "a/b"}))
	assert.Equal(t, dir+"/a/b", wd.Get())
	assertInDir(t, filepath.Join(dir, "a", "b"))

	// Dot segments are kept as typed.
	require.NoError(t, ChangeDir(wd, []string{"cd", "../../c"}))
	assert.Equal(t, dir+"/a/b/../../c", wd.Get())
	assertInDir(t, filepath.Join(dir, "c"))
}

func TestChangeDirIgnoresExtraArgs(t *testing.T) {
	wd, dir := chdirTemp(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "x"), 0700))

	require.NoError(t, ChangeDir(wd, []string{"cd", "x", "ignored"}))
	assert.Equal(t, dir+"/x", wd.Get())
}

func TestChangeDirInvalidArguments(t *testing.T) {
	wd, dir := chdirTemp(t)

	cases := map[string][]string{
		"nil":     nil,
		"empty":   {},
		"no-path": {"cd"},
	}

	for tn, argv := range cases {
		t.Run(tn, func(t *testing.T) {
			err := ChangeDir(wd, argv)
			assert.True(t, errors.Is(err, ErrInvalidArguments), "got %v", err)
			assert.Equal(t, dir, wd.Get())
			assertInDir(t, dir)
		})
	}

	assert.True(t, errors.Is(ChangeDir(nil, []string{"cd", "/"}), ErrInvalidArguments))
	assertInDir(t, dir)
}

func TestChangeDirMissing(t *testing.T) {
	wd, dir := chdirTemp(t)

	err := ChangeDir(wd, []string{"cd", "does-not-exist"})
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
	assert.Equal(t, dir, wd.Get())
	assertInDir(t, dir)
}

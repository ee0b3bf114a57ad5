package config

import (
	"bytes"
	"io/ioutil"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, defaultConfig().PromptDelimiter, cfg.PromptDelimiter)
	assert.Equal(t, tempDir, cfg.Dir())
}

func TestInitializeFsKeepsExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	existing := []byte("prompt_delimiter: '% '\ncolor: always\n")
	require.NoError(t, afero.WriteFile(fs, ConfigurationName, existing, 0600))

	logs := &bytes.Buffer{}
	require.NoError(t, InitializeFs(fs, log.New(logs, "", 0)))

	contents, err := afero.ReadFile(fs, ConfigurationName)
	require.NoError(t, err)
	assert.Equal(t, existing, contents)
	assert.Contains(t, logs.String(), "already exists")
}

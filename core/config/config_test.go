package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default("/etc/minish")
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "> ", cfg.PromptDelimiter)
	assert.Equal(t, "/etc/minish", cfg.Dir())
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Configuration)
		invalid string
	}{
		"default": {mutate: func(*Configuration) {}},
		"bad-color": {
			mutate:  func(c *Configuration) { c.Color = "rainbow" },
			invalid: "color",
		},
		"no-delimiter": {
			mutate:  func(c *Configuration) { c.PromptDelimiter = "" },
			invalid: "prompt_delimiter",
		},
		"negative-history": {
			mutate:  func(c *Configuration) { c.HistoryLimit = -1 },
			invalid: "history_limit",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.invalid == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.invalid)
		})
	}
}

func TestLoadFs(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := LoadFs(afero.NewMemMapFs(), "/cfg")
		assert.Error(t, err)
	})

	t.Run("strict", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, ConfigurationName, []byte("unknown_field: 1\n"), 0600))

		_, err := LoadFs(fs, "/cfg")
		assert.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, ConfigurationName, []byte("prompt_delimiter: '$ '\ncolor: purple\n"), 0600))

		_, err := LoadFs(fs, "/cfg")
		assert.Error(t, err)
	})

	t.Run("valid", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		contents := "prompt_delimiter: '$ '\ncolor: never\nhistory_file: hist\nevent_log: events.log\n"
		require.NoError(t, afero.WriteFile(fs, ConfigurationName, []byte(contents), 0600))

		cfg, err := LoadFs(fs, "/cfg")
		require.NoError(t, err)
		assert.Equal(t, "$ ", cfg.PromptDelimiter)
		assert.Equal(t, ColorNever, cfg.Color)
		assert.Equal(t, "/cfg/hist", cfg.HistoryPath())

		fd, err := cfg.OpenEventLog()
		require.NoError(t, err)
		_, err = fd.Write([]byte("{}\n"))
		assert.NoError(t, err)
		assert.NoError(t, fd.Close())

		exists, err := afero.Exists(fs, "events.log")
		assert.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestDisabledFiles(t *testing.T) {
	cfg := Default("/cfg")
	cfg.HistoryFile = ""
	cfg.EventLog = ""

	assert.Equal(t, "", cfg.HistoryPath())
	fd, err := cfg.OpenEventLog()
	assert.NoError(t, err)
	assert.Nil(t, fd)
}

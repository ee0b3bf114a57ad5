package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	DirName           = ".minish"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs  afero.Fs
	configDir string

	PromptDelimiter string `json:"prompt_delimiter" validate:"required"`
	Color           string `json:"color" validate:"oneof=always auto never"`

	HistoryFile  string `json:"history_file"`
	HistoryLimit int    `json:"history_limit" validate:"gte=0"`

	EventLog string `json:"event_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = osDirFs(c.Dir())
	}
	return c.configFs
}

// Dir is the directory the configuration was loaded from.
func (c *Configuration) Dir() string {
	if c.configDir == "" {
		return "."
	}
	return c.configDir
}

// HistoryPath returns the readline history file, or "" if history isn't
// persisted.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" {
		return ""
	}
	return c.resolve(c.HistoryFile)
}

func (c *Configuration) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir(), name)
}

// OpenEventLog opens the event log in an append only state. It returns nil
// if the log is disabled.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, nil
	}
	fs := c.fs()
	if filepath.IsAbs(c.EventLog) {
		fs = afero.NewOsFs()
	}
	return fs.OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// Default returns the built in configuration rooted at dir.
func Default(dir string) *Configuration {
	out := defaultConfig()
	out.configDir = dir
	return out
}

// osDirFs roots an afero filesystem at dir on the real OS.
func osDirFs(dir string) afero.Fs {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return afero.NewBasePathFs(afero.NewOsFs(), dir)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

package config

import (
	"log"
	"os"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration to dir unless one exists.
func Initialize(dir string, logger *log.Logger) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return InitializeFs(osDirFs(dir), logger)
}

// InitializeFs writes the default configuration to the root of fs.
func InitializeFs(fs afero.Fs, logger *log.Logger) error {
	switch exists, err := afero.Exists(fs, ConfigurationName); {
	case err != nil:
		return err
	case exists:
		logger.Printf("%s already exists, skipping\n", ConfigurationName)
		return nil
	}

	logger.Printf("Writing %s\n", ConfigurationName)
	return afero.WriteFile(fs, ConfigurationName, defaultConfigData, 0600)
}

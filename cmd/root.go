package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/josephlewis42/minish/core"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	commandLine string
)

// loadConfig loads the configuration, falling back to the built in defaults
// if the directory has none.
func loadConfig() (*config.Configuration, error) {
	dir := cfgPath
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, config.DirName)
	}

	configuration, err := config.Load(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(dir), nil
	}

	return configuration, err
}

// openEvents starts an event log session if the configuration enables one.
func openEvents(cfg *config.Configuration) (*logger.SessionLogger, io.Closer, error) {
	fd, err := cfg.OpenEventLog()
	if err != nil || fd == nil {
		return nil, io.NopCloser(nil), err
	}
	return logger.NewJsonLinesLogRecorder(fd).NewSession(), fd, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minish",
	Short: "A minimal command interpreter",
	Long: `A minimal command interpreter.

Runs programs found on PATH, connects them with "|" and redirects their
standard streams with "<", ">" and "2>". The only builtins are cd and exit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		appLogger := log.New(cmd.ErrOrStderr(), "[minish] ", 0)

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		events, eventLog, err := openEvents(cfg)
		if err != nil {
			return err
		}
		defer eventLog.Close()

		if cmd.Flags().Changed("command") {
			executor, err := core.NewExecutor(core.OSStdio())
			if err != nil {
				return err
			}
			sh := &core.Shell{
				Executor: executor,
				Config:   cfg,
				Log:      appLogger,
				Events:   events,
			}
			sh.RunLine(commandLine)
			return nil
		}

		sh, err := core.NewShell(cfg, core.OSStdio(), events, appLogger)
		if err != nil {
			return err
		}
		defer sh.Close()

		if code := sh.Run(); code != 0 {
			return fmt.Errorf("exit status %d", code)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory (default $HOME/"+config.DirName+")")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single line and exit")
}

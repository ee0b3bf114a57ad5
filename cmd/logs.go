package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/josephlewis42/minish/core/logger"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Explore the event logs.",
}

// catCommand prints a log as one line per command
var catCommand = &cobra.Command{
	Use:   "cat EVENTS.log",
	Short: "Print the commands recorded in an event log.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		w := cmd.OutOrStdout()
		return logger.ReadJSONLinesLog(fd, func(le *structpb.Struct) {
			ev, err := logger.DecodeCommandEvent(le)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping entry: %v\n", err)
				return
			}

			var statuses []int
			for _, st := range ev.Stages {
				statuses = append(statuses, st.Status)
			}
			fmt.Fprintf(w, "%s %s> %s %v\n", ev.Time.UTC().Format(time.RFC3339), ev.Dir, ev.Line, statuses)
		})
	},
}

// reportCommand summarizes a log
var reportCommand = &cobra.Command{
	Use:   "report EVENTS.log",
	Short: "Summarize the commands and failures in an event log as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		report := logger.NewReport()
		if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
			return err
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	logsCmd.AddCommand(catCommand)
	logsCmd.AddCommand(reportCommand)
	rootCmd.AddCommand(logsCmd)
}

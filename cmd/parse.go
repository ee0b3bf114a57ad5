package cmd

import (
	"github.com/josephlewis42/minish/core/shell"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse LINE",
	Short: "Print the command tree for a line without running it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		tree, err := shell.Parse(args[0])
		if err != nil || tree == nil {
			return err
		}

		shell.Fprint(cmd.OutOrStdout(), tree)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

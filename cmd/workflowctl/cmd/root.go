// Package cmd contains the CLI commands for workflowctl.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Used for flags
	verbose bool
	output  string
)

const defaultDBPath = "data/workflow.db"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "workflowctl",
	Short: "WorkFlow - Business operations admin tool",
	Long: `workflowctl manages a WorkFlow deployment from the command line.

It operates directly on the SQLite database file and is intended for
system administrators; the web frontend talks to workflow-server instead.

Examples:
  # Run pending schema migrations
  workflowctl migrate --db data/workflow.db

  # List login accounts
  workflowctl user list

  # Create an account
  workflowctl user create --username priya

  # Change an account's password
  workflowctl user passwd --username priya`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
}

// GetOutput returns the output format.
func GetOutput() string {
	return output
}

// PrintVerbose prints a message only if verbose mode is enabled.
func PrintVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format+"\n", args...)
	}
}

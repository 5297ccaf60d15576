package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tailpoint/tailpoint/logger"
	"github.com/tailpoint/tailpoint/utils"
)

var (
	statePath string
	quiet     bool
	jsonOut   bool

	commands = []*cobra.Command{}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tailpoint",
	Short: "inspect and manage binlog resume checkpoints",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if statePath != "" {
			viper.Set("STATE_FOLDER", filepath.Dir(statePath))
		}
		// logger uses STATE_FOLDER
		logger.Init()
		if quiet {
			logger.SetLevel("warn")
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		if ok := utils.IsValidSubcommand(commands, args[0]); !ok {
			return fmt.Errorf("'%s' is an invalid command. Use 'tailpoint --help' to display usage guide", args[0])
		}

		return nil
	},
}

func init() {
	commands = append(commands, showCmd, resumeCmd, setCmd, verifyCmd)
	rootCmd.AddCommand(commands...)

	rootCmd.PersistentFlags().StringVarP(&statePath, "state", "", "", "(Required) Checkpoint state file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "", false, "(Optional) Only log warnings and errors")
	// Disable Cobra CLI's built-in usage and error handling
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

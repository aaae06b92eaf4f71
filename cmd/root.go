package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "simulator",
	Short: "Solar race-vehicle strategy simulator",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.AddCommand(runCmd, optimizeCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "Export structured training plans to trainer and calendar formats",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default ~/.config/coach/config.toml)")
}

func Execute() error {
	return rootCmd.Execute()
}

package config

import (
	"github.com/spf13/cobra"

	appConfig "github.com/solemate/cli/internal/config"
	"github.com/solemate/cli/internal/format"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
	Long: `Configuration commands for Solemate CLI.

Shows and changes settings stored in the config file.`,
}

// showCmd prints the current configuration
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configuration",
	Long:  "Display the current configuration",
	RunE:  runShow,
}

// setCmd sets a configuration value
var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value, e.g. server.url or format.default",
	Args:  cobra.ExactArgs(2),
	RunE:  runSet,
}

func runShow(cmd *cobra.Command, args []string) error {
	return format.Print(appConfig.Get())
}

func runSet(cmd *cobra.Command, args []string) error {
	if err := appConfig.Set(args[0], args[1]); err != nil {
		return err
	}
	format.PrintSuccess("✓ %s updated", args[0])
	return nil
}

func init() {
	ConfigCmd.AddCommand(showCmd)
	ConfigCmd.AddCommand(setCmd)
}

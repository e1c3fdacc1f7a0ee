package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	logLevel   string
)

// rootCmd is the root command for arscene.
var rootCmd = &cobra.Command{
	Use:     "arscene",
	Version: "dev",
	Short:   "AR scene session tools",
	Long: `arscene drives an AR scene session outside a device runtime.

It replays recorded tracking traces (planes, augmented images, taps) through
the session, prints vertical plane gap measurements and placement outcomes,
and inspects the augmented image database a config would build.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "session config file (YAML); defaults are used when empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(deviceCmd)
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// ExecuteContext runs the root command with ctx available to subcommands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

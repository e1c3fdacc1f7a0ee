package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeusync/arscene/internal/core/session"
)

var deviceCmd = &cobra.Command{
	Use:   "check-device <gles-version>",
	Short: "Check whether an OpenGL ES version can run the renderer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.RequireGLES(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "supported (OpenGL ES %s)\n", args[0])
		return nil
	},
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeusync/arscene/internal/injector"
	"github.com/zeusync/arscene/internal/replay"
)

var noImages bool

var replayCmd = &cobra.Command{
	Use:   "replay <trace.yaml>",
	Short: "Replay a recorded tracking trace through a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&noImages, "no-images", false, "skip the augmented image database bootstrap")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noImages {
		cfg.Images = nil
	}
	trace, err := replay.LoadFile(args[0])
	if err != nil {
		return err
	}

	s, cleanup, err := injector.InitializeSession(cfg)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	defer cleanup()

	ctx := cmd.Context()
	if err := s.Start(ctx); err != nil {
		return err
	}
	defer s.Close()

	report, err := replay.Run(ctx, s, trace, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d frames, %d taps, %d placed\n",
		report.Frames, len(report.Outcomes), report.Placed())
	return nil
}

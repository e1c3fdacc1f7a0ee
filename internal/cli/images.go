package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeusync/arscene/internal/core/imagedb"
	"github.com/zeusync/arscene/internal/core/observability/log"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Build the augmented image database from the config and list it",
	Args:  cobra.NoArgs,
	RunE:  runImages,
}

func runImages(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := log.New(cfg.Level())
	defer func() { _ = logger.Sync() }()

	db, bootErr := imagedb.Bootstrap(cmd.Context(), nil, cfg.Images, logger)
	out := cmd.OutOrStdout()
	for _, e := range db.Entries() {
		fmt.Fprintf(out, "%d\t%s\t%.3fm\t%dx%d\t%016x\n",
			e.Index, e.Name, e.WidthMeters, e.Width, e.Height, e.Fingerprint)
	}
	return bootErr
}

package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/arc/pkg/runner/backfill"
)

func addBackfill(topLevel *cobra.Command) {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Create records for every day since the last one.",
		Long: `Every command that reads history backfills first. Run backfill
directly to see what would be written with --dry-run.`,
		Example: `
arc backfill
arc backfill --dry-run
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := loadApp()
			if err != nil {
				return output.HandleError(err)
			}
			defer done()
			s := backfill.Backfill{
				App:    svc,
				DryRun: dryRun,
				JSON:   output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the planned changes without writing them.")

	topLevel.AddCommand(cmd)
}

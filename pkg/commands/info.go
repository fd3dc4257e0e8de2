package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/arc/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the store and where it lives.",
		Example: `
arc info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, cfg, done, err := loadApp()
			if err != nil {
				return output.HandleError(err)
			}
			defer done()
			s := info.Info{
				Config: cfg,
				App:    svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/arc/pkg/printers"
	"tableflip.dev/arc/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	format := string(printers.FormatJSON)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump every habit and day record.",
		Example: `
arc export > arc.json
arc export --format yaml
arc export --format toml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			f := printers.Format(strings.ToLower(format))
			switch f {
			case printers.FormatJSON, printers.FormatYAML, printers.FormatTOML:
			default:
				return output.HandleError(fmt.Errorf("unsupported format %q (expected json, yaml or toml)", format))
			}
			svc, _, done, err := loadApp()
			if err != nil {
				return output.HandleError(err)
			}
			defer done()
			s := export.Export{
				App:    svc,
				Format: f,
				Out:    cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", format, "Output format. One of 'json', 'yaml' or 'toml'.")

	topLevel.AddCommand(cmd)
}

package commands

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(arc completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(arc completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func habitCompletions(toComplete string) []string {
	svc, _, done, err := loadApp()
	if err != nil {
		return nil
	}
	defer done()
	habits, err := svc.Habits(context.Background())
	if err != nil {
		return nil
	}
	var names []string
	for _, h := range habits {
		if strings.HasPrefix(strings.ToLower(h.Name), strings.ToLower(toComplete)) {
			names = append(names, strconv.Quote(h.Name))
		}
	}
	return names
}

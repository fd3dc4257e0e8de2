package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/commands/options"
	"tableflip.dev/arc/pkg/store"
)

var (
	output  = &options.OutputOptions{}
	logging = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "arc",
		Short: base.Wrap80("Daily habit tracking on the command line."),
		Long: base.Wrap80("arc keeps one record per day for every habit you track, " +
			"fills in the days you missed, and reports completion, streaks and " +
			"month calendars."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	options.AddLogArgs(cmd, logging)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addHabits(topLevel)
	addToday(topLevel)
	addDay(topLevel)
	addToggle(topLevel)
	addStats(topLevel)
	addCalendar(topLevel)
	addEntries(topLevel)
	addBackfill(topLevel)
	addExport(topLevel)
	addWatch(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
	addVersion(topLevel)
}

// loadApp opens the configured store. The returned func releases it.
func loadApp() (*app.Service, store.Config, func(), error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	log := logging.Logger()
	p, err := store.Load(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	svc := &app.Service{
		Persistence: p,
		Calendar:    cfg.Calendar(),
		Log:         log,
	}
	return svc, cfg, func() {
		if err := p.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
		_ = log.Sync()
	}, nil
}

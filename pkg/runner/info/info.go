package info

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/store"
)

type Info struct {
	Config store.Config
	App    *app.Service
}

func (n *Info) Do(ctx context.Context) error {

	if override := os.Getenv("ARC_CONFIG_PATH"); override != "" {
		fmt.Println("ARC_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("ARC_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	cal := n.Config.Calendar()
	fmt.Println("Config.path:   ", n.Config.BasePath())
	fmt.Println("Config.driver: ", n.Config.Driver())
	fmt.Println("Week starts on:", cal.FirstWeekday)
	if cal.Location != nil {
		fmt.Println("Timezone:      ", cal.Location)
	}

	if n.App == nil {
		return fmt.Errorf("failed to create habit service")
	}

	habits, err := n.App.Habits(ctx)
	if err != nil {
		return err
	}
	entries, err := n.App.Entries(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Habits:\n")
	for _, h := range habits {
		fmt.Printf("  %s (since %s)\n", h.Name, h.Created.Format("2006-01-02"))
	}
	if len(habits) == 0 {
		fmt.Printf("  %s\n", "no habits")
	}
	fmt.Printf("Entries: %d\n", len(entries))
	if len(entries) > 0 {
		fmt.Printf("  %s to %s\n", entries[0].Date.Format("2006-01-02"), entries[len(entries)-1].Date.Format("2006-01-02"))
	}

	return nil
}

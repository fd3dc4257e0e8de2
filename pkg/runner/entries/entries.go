// Package entries provides runners to inspect and delete stored days.
package entries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/printers"
)

// List prints every stored entry.
type List struct {
	App  *app.Service
	JSON bool
}

func (n *List) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not list, no habit service")
	}
	entries, err := n.App.Entries(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Calendar: n.App.Calendar}
	if n.JSON {
		return pp.JSON(entries)
	}
	habits, err := n.App.Habits(ctx)
	if err != nil {
		return err
	}
	pp.NewLine()
	pp.Entries(habits, entries...)
	return nil
}

// Remove deletes the entry for On. The next backfill recreates it with
// nothing done.
type Remove struct {
	App  *app.Service
	On   time.Time
	JSON bool
}

func (n *Remove) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not remove, no habit service")
	}
	e, err := n.App.DeleteEntry(ctx, n.On)
	if err != nil {
		return err
	}
	if n.JSON {
		pp := printers.PrettyPrint{}
		return pp.JSON(e)
	}
	_, _ = fmt.Fprintf(color.Output, "removed entry for %s\n", e.Date.Format("2006-01-02"))
	return nil
}

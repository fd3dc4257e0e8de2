// Package month provides the runner behind `arc calendar`.
package month

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/printers"
)

// Month prints the progress grid for the month containing On.
type Month struct {
	App  *app.Service
	On   time.Time
	JSON bool
}

func (n *Month) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not render calendar, no habit service")
	}
	if _, err := n.App.Backfill(ctx); err != nil {
		return err
	}
	m, err := n.App.Month(ctx, n.On)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Calendar: n.App.Calendar}
	if n.JSON {
		return pp.JSON(m)
	}
	pp.NewLine()
	pp.Month(m)
	return nil
}

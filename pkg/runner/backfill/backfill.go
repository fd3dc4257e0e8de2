// Package backfill provides the runner behind `arc backfill`.
package backfill

import (
	"context"
	"errors"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/printers"
)

// Backfill creates the missing days up to today. With DryRun the batch is
// only printed.
type Backfill struct {
	App    *app.Service
	DryRun bool
	JSON   bool
}

func (n *Backfill) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not backfill, no habit service")
	}

	var (
		b   *app.Batch
		err error
	)
	if n.DryRun {
		b, err = n.App.Plan(ctx)
	} else {
		b, err = n.App.Backfill(ctx)
	}
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Calendar: n.App.Calendar}
	if n.JSON {
		return pp.JSON(b)
	}
	pp.Batch(b, n.DryRun)
	return nil
}

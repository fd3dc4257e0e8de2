// Package export provides the runner behind `arc export`.
package export

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/printers"
)

// Export dumps every habit and entry.
type Export struct {
	App    *app.Service
	Format printers.Format
	// Out defaults to stdout.
	Out io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not export, no habit service")
	}
	snap, err := n.App.Export(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	return pp.Encode(n.Format, snap)
}

// Package watch provides the runner behind `arc watch`, which reprints
// today's checklist whenever the store changes.
package watch

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/arc/pkg/app"
	"tableflip.dev/arc/pkg/printers"
	"tableflip.dev/arc/pkg/store"
)

// Watch follows store changes until ctx is cancelled.
type Watch struct {
	App *app.Service
	Log *zap.Logger
	// OnEvent, when set, is called after each refresh.
	OnEvent func(store.Event)
}

func (n *Watch) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not watch, no habit service")
	}
	log := n.Log
	if log == nil {
		log = zap.NewNop()
	}

	events, err := n.App.Watch(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Calendar: n.App.Calendar}
	if err := n.render(ctx, &pp); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			log.Debug("store changed", zap.Stringer("type", ev.Type), zap.String("path", ev.Path))
			if err := n.render(ctx, &pp); err != nil {
				log.Warn("refresh failed", zap.Error(err))
			}
			if n.OnEvent != nil {
				n.OnEvent(ev)
			}
		}
	}
}

func (n *Watch) render(ctx context.Context, pp *printers.PrettyPrint) error {
	d, err := n.App.OpenDay(ctx, n.App.Today())
	if err != nil {
		return err
	}
	pp.NewLine()
	pp.Day(d)
	return nil
}

// Package watch provides the runner that reprints tasks when storage changes.
package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/bucket"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

// Watch prints the buckets, then prints them again after every change until
// ctx is done.
type Watch struct {
	// Clock returns now for each redraw; defaults to time.Now.
	Clock func() time.Time

	ShowID bool
	Out    io.Writer

	Persistence store.Persistence
}

func (n *Watch) now() time.Time {
	if n.Clock != nil {
		return n.Clock()
	}
	return time.Now()
}

func (n *Watch) Do(ctx context.Context) error {
	svc := app.Service{Persistence: n.Persistence}
	if n.Persistence == nil {
		return app.ErrNoPersistence
	}

	events, err := n.Persistence.Watch(ctx)
	if errors.Is(err, store.ErrWatchUnsupported) {
		return errors.New("watch needs the diskv backend")
	}
	if err != nil {
		return err
	}

	if err := n.print(ctx, &svc); err != nil {
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
			if ev.Type == store.EventCollectionChanged && ev.Collection != store.TasksCollection {
				slog.Debug("watch: ignoring change", "collection", ev.Collection)
				continue
			}
			if err := n.print(ctx, &svc); err != nil {
				return err
			}
		}
	}
}

func (n *Watch) print(ctx context.Context, svc *app.Service) error {
	now := n.now()
	bs, err := svc.Buckets(ctx, now)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.Title(now.Format("Mon Jan 2 15:04"))
	pp.Buckets(now, bs, bucket.Today, bucket.Yesterday, bucket.Earlier)
	return nil
}

package outbox

import (
	"context"
	"errors"

	domoutbox "github.com/commercelab/orderflow/internal/domain/outbox"
)

type fanoutPublisher struct {
	publishers []domoutbox.Publisher
}

// Fanout returns a publisher that delivers each event to every given
// publisher, joining the individual errors.
func Fanout(publishers ...domoutbox.Publisher) domoutbox.Publisher {
	kept := make([]domoutbox.Publisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &fanoutPublisher{publishers: kept}
}

func (f *fanoutPublisher) Publish(ctx context.Context, e domoutbox.Event) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package service

import (
	"context"
	"time"

	"github.com/weatherfav/internal/events"
	"github.com/weatherfav/internal/logging"
)

// publish sends ev after the change is committed. A failed publish is
// logged and does not undo or fail the operation.
func publish(ctx context.Context, p events.Publisher, ev events.Event) {
	if p == nil {
		return
	}
	ev.At = time.Now().UTC()
	if err := p.Publish(context.WithoutCancel(ctx), ev); err != nil {
		logging.Warn("event %s for user %d not published: %v", ev.Type, ev.UserID, err)
	}
}

package service

import (
	"context"
	"time"

	"dinelt/internal/events"

	"github.com/rs/zerolog"
)

// publishTimeout bounds how long a request waits on the event publisher.
const publishTimeout = 2 * time.Second

// publish sends events without failing the caller. The write that produced
// them has already been committed, so a cancelled request still publishes.
func publish(ctx context.Context, publisher events.Publisher, logger zerolog.Logger, evts ...events.Event) {
	if publisher == nil || len(evts) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := publisher.Publish(ctx, evts...); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", evts[0].Type).
			Int("event_count", len(evts)).
			Msg("failed to publish events")
	}
}

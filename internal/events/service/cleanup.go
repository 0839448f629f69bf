package service

import (
	"context"
	"time"

	"lankaconnect/pkg/requestcontext"
)

// RemoveExpiredBadges sweeps every event that has at least one expired badge
// assignment and removes the expired entries. Removal is best-effort per
// badge: a failure is logged and counted, never propagated, so one bad row
// cannot block the rest of the sweep.
func (s *EventService) RemoveExpiredBadges(ctx context.Context) (removed int, err error) {
	now := requestcontext.Now(ctx)
	events, err := s.store.ListWithExpiredBadges(ctx, now)
	if err != nil {
		return 0, translateStoreErr(err)
	}

	for _, event := range events {
		for _, badge := range event.ExpiredBadges(now) {
			if err := s.RemoveBadge(ctx, event.ID, badge.BadgeID); err != nil {
				s.logger.ErrorContext(ctx, "failed to remove expired badge",
					"event_id", event.ID.String(),
					"badge_id", badge.BadgeID.String(),
					"error", err.Error())
				continue
			}
			removed++
			if s.metrics != nil {
				s.metrics.BadgesExpired.Inc()
			}
		}
	}
	if removed > 0 {
		s.logger.InfoContext(ctx, "expired badge sweep finished", "removed", removed)
	}
	return removed, nil
}

// StartBadgeSweeper runs RemoveExpiredBadges on the given interval until ctx
// is cancelled. Sweep errors are logged; only cancellation stops the loop.
func (s *EventService) StartBadgeSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.RemoveExpiredBadges(ctx); err != nil {
				s.logger.ErrorContext(ctx, "expired badge sweep failed", "error", err.Error())
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

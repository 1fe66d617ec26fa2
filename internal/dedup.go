package internal

import (
	"context"
	"github.com/flatwatch/olx-estate-notifier/internal/log"
	"time"
)

// SentAdStore is the persistence boundary of the deduplication filter.
// Writes are append-only; the read side is authoritative, so duplicate
// appends for the same (user, link) are tolerated.
type SentAdStore interface {
	WasSent(ctx context.Context, userId int64, link string) (bool, error)
	RecordSent(ctx context.Context, userId int64, link string) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// retention window of the sent-ad log, bounds both storage growth and
// how long a previously delivered link stays suppressed
const retentionMonths = 1

type DedupFilter struct {
	store SentAdStore
}

func NewDedupFilter(store SentAdStore) *DedupFilter {
	return &DedupFilter{store: store}
}

// Eligible reports whether link has not yet been delivered to userId.
func (f *DedupFilter) Eligible(ctx context.Context, userId int64, link string) (bool, error) {
	sent, err := f.store.WasSent(ctx, userId, link)
	if err != nil {
		return false, err
	}

	return !sent, nil
}

// MarkSent appends a delivery record for (userId, link).
func (f *DedupFilter) MarkSent(ctx context.Context, userId int64, link string) error {
	return f.store.RecordSent(ctx, userId, link)
}

// PruneStale drops delivery records older than the retention window.
// Runs at the start of every cycle, before any dedup check.
func (f *DedupFilter) PruneStale(ctx context.Context, now time.Time, logger log.Logger) {
	cutoff := now.AddDate(0, -retentionMonths, 0)

	purged, err := f.store.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		logger.WithError(err).Error("failed to purge outdated sent ads")
		return
	}

	if purged > 0 {
		logger.WithField("PurgedCount", purged).Info("purged outdated sent ads")
	}
}

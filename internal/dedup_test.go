package internal

import (
	"context"
	"github.com/flatwatch/olx-estate-notifier/internal/log"
	"sync"
	"testing"
	"time"
)

type sentRow struct {
	userId    int64
	link      string
	timestamp time.Time
}

// memorySentAds is an in-memory SentAdStore with the same append-only,
// read-side-authoritative semantics as the database log.
type memorySentAds struct {
	mu   sync.Mutex
	rows []sentRow
	fail bool
}

func (m *memorySentAds) WasSent(_ context.Context, userId int64, link string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return false, context.DeadlineExceeded
	}

	for _, row := range m.rows {
		if row.userId == userId && row.link == link {
			return true, nil
		}
	}

	return false, nil
}

func (m *memorySentAds) RecordSent(_ context.Context, userId int64, link string) error {
	return m.insert(userId, link, time.Now().UTC())
}

func (m *memorySentAds) insert(userId int64, link string, timestamp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows = append(m.rows, sentRow{userId: userId, link: link, timestamp: timestamp})
	return nil
}

func (m *memorySentAds) PurgeOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.rows[:0]
	purged := 0
	for _, row := range m.rows {
		if row.timestamp.Before(cutoff) {
			purged++
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept

	return purged, nil
}

func (m *memorySentAds) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func TestDedupFilter_recordThenCheck(t *testing.T) {
	ctx := context.Background()
	filter := NewDedupFilter(&memorySentAds{})

	const link = "https://www.olx.pl/d/oferta/a.html"

	eligible, err := filter.Eligible(ctx, 1, link)
	if err != nil || !eligible {
		t.Fatalf("fresh link not eligible: %v, %v", eligible, err)
	}

	if err := filter.MarkSent(ctx, 1, link); err != nil {
		t.Fatal(err)
	}

	eligible, err = filter.Eligible(ctx, 1, link)
	if err != nil || eligible {
		t.Fatalf("sent link still eligible: %v, %v", eligible, err)
	}
}

func TestDedupFilter_duplicateAppendsTolerated(t *testing.T) {
	ctx := context.Background()
	store := &memorySentAds{}
	filter := NewDedupFilter(store)

	const link = "https://www.olx.pl/d/oferta/a.html"

	// duplicate writes are not deduplicated, the read side is authoritative
	_ = filter.MarkSent(ctx, 1, link)
	_ = filter.MarkSent(ctx, 1, link)

	if store.count() != 2 {
		t.Fatalf("store holds %d rows, want 2 raw appends", store.count())
	}

	eligible, _ := filter.Eligible(ctx, 1, link)
	if eligible {
		t.Error("link delivered twice must still be excluded exactly once")
	}
}

func TestDedupFilter_perUserScope(t *testing.T) {
	ctx := context.Background()
	filter := NewDedupFilter(&memorySentAds{})

	const link = "https://www.olx.pl/d/oferta/a.html"
	_ = filter.MarkSent(ctx, 1, link)

	eligible, _ := filter.Eligible(ctx, 2, link)
	if !eligible {
		t.Error("link sent to one user must stay eligible for another")
	}
}

func TestDedupFilter_pruneStale(t *testing.T) {
	ctx := context.Background()
	store := &memorySentAds{}
	filter := NewDedupFilter(store)

	now := time.Now().UTC()
	_ = store.insert(1, "https://www.olx.pl/d/oferta/old.html", now.AddDate(0, 0, -40))
	_ = store.insert(1, "https://www.olx.pl/d/oferta/recent.html", now.AddDate(0, 0, -20))

	filter.PruneStale(ctx, now, log.GetLogger())

	if store.count() != 1 {
		t.Fatalf("store holds %d rows after prune, want 1", store.count())
	}

	sent, _ := store.WasSent(ctx, 1, "https://www.olx.pl/d/oferta/recent.html")
	if !sent {
		t.Error("row inside the retention window was purged")
	}
}

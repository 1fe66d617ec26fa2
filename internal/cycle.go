package internal

import (
	"context"
	"github.com/flatwatch/olx-estate-notifier/internal/log"
	"github.com/flatwatch/olx-estate-notifier/internal/util/assert"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
	"slices"
	"sync"
	"time"
)

// CityFetcher produces one scan cycle's listings for a single city.
// Implementations must contain their own failures and return partial
// results instead of an error.
type CityFetcher interface {
	FetchCity(ctx context.Context, city string, pairs []Bucket) CityListings
}

// SubscriberSource is the read side of the subscriber store.
type SubscriberSource interface {
	GetActiveSubscribersWithCity(ctx context.Context) ([]Subscriber, error)
	GetDistinctCities(ctx context.Context) ([]string, error)
}

// Notifier delivers one rendered listing to a chat.
type Notifier interface {
	Deliver(ctx context.Context, chatId int64, caption string, imageUrl string) error
}

// Cycle is the supervisory scan loop: purge stale delivery records, fetch
// every subscribed city, fan results out per subscriber, sleep, repeat.
// A single cycle is in flight at any time; the loop only ends with the
// process.
type Cycle struct {
	fetcher     CityFetcher
	subscribers SubscriberSource
	dedup       *DedupFilter
	notifier    Notifier
	interval    time.Duration
}

func NewCycle(fetcher CityFetcher, subscribers SubscriberSource, dedup *DedupFilter, notifier Notifier, interval time.Duration) *Cycle {
	assert.NotNil(fetcher, "expecting cycle fetcher to be not nil")
	assert.NotNil(subscribers, "expecting cycle subscriber source to be not nil")
	assert.NotNil(dedup, "expecting cycle dedup filter to be not nil")
	assert.NotNil(notifier, "expecting cycle notifier to be not nil")

	return &Cycle{
		fetcher:     fetcher,
		subscribers: subscribers,
		dedup:       dedup,
		notifier:    notifier,
		interval:    interval,
	}
}

func (c *Cycle) Run(ctx context.Context) {
	logger := log.GetLogger()

	for {
		c.RunOnce(ctx)

		select {
		case <-ctx.Done():
			logger.Info("scan loop stopped")
			return
		case <-time.After(c.interval):
		}
	}
}

// RunOnce executes one full scan cycle. Store failures while reading the
// subscriber set abort only this cycle; the loop retries on the next tick.
func (c *Cycle) RunOnce(ctx context.Context) {
	logger := log.GetLogger().WithField("CycleId", uuid.New().String())

	c.dedup.PruneStale(ctx, time.Now().UTC(), logger)

	subscribers, err := c.subscribers.GetActiveSubscribersWithCity(ctx)
	if err != nil {
		logger.WithError(err).Error("failed to load subscribers, skipping cycle")
		return
	}

	cities, err := c.subscribers.GetDistinctCities(ctx)
	if err != nil {
		logger.WithError(err).Error("failed to load subscribed cities, skipping cycle")
		return
	}

	logger.WithFields(logrus.Fields{
		"CityCount":       len(cities),
		"SubscriberCount": len(subscribers),
	}).Info("starting scan cycle")

	results := c.fetchCities(ctx, cities, pairsByCity(subscribers))

	var wg sync.WaitGroup
	for _, subscriber := range subscribers {
		subscriber := subscriber
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.notifySubscriber(ctx, subscriber, results, logger)
		}()
	}
	wg.Wait()

	logger.Info("scan cycle finished")
}

// pairsByCity derives which (building, transaction) buckets each city's
// subscribers actually read, so no index page is fetched for nothing.
func pairsByCity(subscribers []Subscriber) map[string][]Bucket {
	pairs := make(map[string][]Bucket)
	for _, subscriber := range subscribers {
		bucket := subscriber.Bucket()
		if !slices.Contains(pairs[subscriber.City], bucket) {
			pairs[subscriber.City] = append(pairs[subscriber.City], bucket)
		}
	}

	return pairs
}

// fetchCities fans one fetch pipeline out per city. A city's total failure
// yields an empty result set for that city and nothing else.
func (c *Cycle) fetchCities(ctx context.Context, cities []string, pairs map[string][]Bucket) *xsync.MapOf[string, CityListings] {
	results := xsync.NewMapOf[string, CityListings]()

	var wg sync.WaitGroup
	for _, city := range cities {
		city := city

		cityPairs := pairs[city]
		if len(cityPairs) == 0 {
			cityPairs = []Bucket{{AdType: DefaultAdType, BuildingType: DefaultBuildingType}}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			results.Store(city, c.fetcher.FetchCity(ctx, city, cityPairs))
		}()
	}
	wg.Wait()

	return results
}

func (c *Cycle) notifySubscriber(ctx context.Context, subscriber Subscriber, results *xsync.MapOf[string, CityListings], logger log.Logger) {
	subLogger := logger.WithField("UserId", subscriber.UserId)

	cityResults, ok := results.Load(subscriber.City)
	if !ok {
		return
	}

	sent := 0
	for _, item := range cityResults[subscriber.Bucket()] {
		if ctx.Err() != nil {
			return
		}

		if !PassesFilters(item, subscriber, subLogger) {
			continue
		}

		eligible, err := c.dedup.Eligible(ctx, subscriber.UserId, item.ItemLink)
		if err != nil {
			subLogger.WithError(err).Warn("dedup check failed, skipping item")
			continue
		}
		if !eligible {
			continue
		}

		if err := c.notifier.Deliver(ctx, subscriber.ChatId, RenderCaption(item), item.ItemImage); err != nil {
			subLogger.WithError(err).Warn("delivery failed, giving up on subscriber until next cycle")
			return
		}

		if err := c.dedup.MarkSent(ctx, subscriber.UserId, item.ItemLink); err != nil {
			subLogger.WithError(err).Warn("failed to record sent ad")
		}

		sent++
	}

	subLogger.WithField("SentCount", sent).Info("subscriber processed")
}

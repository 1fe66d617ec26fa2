package scraper

import (
	"context"
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"github.com/flatwatch/olx-estate-notifier/internal"
	"github.com/flatwatch/olx-estate-notifier/internal/log"
	"golang.org/x/sync/errgroup"
	"net/http"
)

// FetchCity runs the full pipeline for one city: per requested
// (building, transaction) pair, collect index links and resolve them into
// normalized records. Failures are contained per pair and per page; the
// result may be partial but FetchCity itself never fails.
func (s *Scraper) FetchCity(ctx context.Context, city string, pairs []internal.Bucket) internal.CityListings {
	results := make(internal.CityListings, len(pairs))

	for _, pair := range pairs {
		if ctx.Err() != nil {
			break
		}

		links := s.collectLinks(ctx, city, pair)
		results[pair] = s.fetchDetails(ctx, links)
	}

	return results
}

// fetchDetails resolves detail pages concurrently. Completion order is
// meaningless under concurrency, so results are pinned to their link index
// and reassembled in index order afterwards: the index page lists newest
// first and that is the delivery order.
func (s *Scraper) fetchDetails(ctx context.Context, links []internal.TaggedLink) []internal.ListingRecord {
	logger := log.GetLogger()

	fetched := make([]*internal.ListingRecord, len(links))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			record, err := s.fetchOne(gctx, link)
			if err != nil {
				// a failed page is "no record", never a failed batch
				logger.WithField("Url", link.URL).WithError(err).Warn("skipping detail page")
				return nil
			}

			fetched[i] = record
			return nil
		})
	}

	// group errors are never propagated from the closures above
	_ = g.Wait()

	// reassemble in index order, dropping failed pages
	records := make([]internal.ListingRecord, 0, len(fetched))
	for _, record := range fetched {
		if record != nil {
			records = append(records, *record)
		}
	}

	return records
}

func (s *Scraper) fetchOne(ctx context.Context, link internal.TaggedLink) (*internal.ListingRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detail page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse detail page: %w", err)
	}

	// a card may redirect cross-site, the final host picks the extractor
	finalUrl := resp.Request.URL.String()
	site, ok := internal.ResolveSite(finalUrl)
	if !ok {
		site = link.Site
	}

	switch site {
	case internal.SiteOLX:
		return ExtractOLX(doc, finalUrl)
	case internal.SiteOtodom:
		return ExtractOtodom(doc, finalUrl)
	}

	return nil, fmt.Errorf("no extractor for host of %s", finalUrl)
}

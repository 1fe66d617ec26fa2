package scraper

import (
	"fmt"
	"github.com/flatwatch/olx-estate-notifier/internal/util"
	"github.com/gocolly/colly/v2"
	"net/http"
	"strings"
	"time"
)

// both marketplaces reject go's default client agent
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Scraper runs the index-to-records pipeline for one city at a time:
// collect detail-page links from index pages, fetch each concurrently,
// extract normalized records.
type Scraper struct {
	collector   *colly.Collector
	client      *http.Client
	origin      string
	urlTemplate string
	itemCap     int
	concurrency int
}

func New(config *util.Config) (*Scraper, error) {
	c := colly.NewCollector(
		colly.UserAgent(browserUserAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(config.RequestTimeout())

	err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		RandomDelay: 500 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("scraper: failed to set limit rule: %w", err)
	}

	return &Scraper{
		collector:   c,
		client:      &http.Client{Timeout: config.RequestTimeout()},
		origin:      config.OlxOrigin.Value,
		urlTemplate: config.IndexUrlTemplate.Value,
		itemCap:     config.ItemCap(),
		concurrency: config.Concurrency(),
	}, nil
}

func (s *Scraper) indexUrl(city, buildingType, adType string) string {
	r := strings.NewReplacer(
		"{city}", city,
		"{buildingType}", buildingType,
		"{adType}", adType,
	)

	return r.Replace(s.urlTemplate)
}

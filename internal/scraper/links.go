package scraper

import (
	"context"
	"github.com/flatwatch/olx-estate-notifier/internal"
	"github.com/flatwatch/olx-estate-notifier/internal/log"
	"github.com/flatwatch/olx-estate-notifier/internal/selector"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
	"strings"
)

// collectLinks fetches the index page for one (building, transaction) pair
// and returns the detail-page links of the newest cards, each tagged with
// its marketplace. Promoted cards are excluded. One extra link beyond the
// item cap is collected so that a later malformed entry can be dropped
// without shrinking the delivered count.
func (s *Scraper) collectLinks(ctx context.Context, city string, pair internal.Bucket) []internal.TaggedLink {
	logger := log.GetLogger().WithFields(logrus.Fields{
		"City":         city,
		"BuildingType": pair.BuildingType,
		"AdType":       pair.AdType,
	})

	indexUrl := s.indexUrl(city, pair.BuildingType, pair.AdType)
	limit := s.itemCap + 1

	var links []internal.TaggedLink

	collector := s.collector.Clone()
	collector.OnHTML(selector.OlxCard.String(), func(e *colly.HTMLElement) {
		if ctx.Err() != nil || len(links) >= limit {
			return
		}

		if e.DOM.Find(selector.OlxPromotedBadge.String()).Length() > 0 {
			return
		}

		href := e.ChildAttr(selector.OlxCardLink.String(), "href")
		if href == "" {
			logger.Warn("listing card without link, skipping")
			return
		}

		absolute := s.absoluteUrl(href)
		site, ok := internal.ResolveSite(absolute)
		if !ok {
			logger.WithField("Url", absolute).Warn("card links to unrecognized host, skipping")
			return
		}

		links = append(links, internal.TaggedLink{URL: absolute, Site: site})
	})

	collector.OnError(func(r *colly.Response, err error) {
		logger.WithField("Status", r.StatusCode).WithError(err).Warn("failed to fetch index page")
	})

	if err := collector.Visit(indexUrl); err != nil {
		logger.WithError(err).Warn("failed to visit index page")
		return nil
	}
	collector.Wait()

	logger.WithField("LinkCount", len(links)).Debug("collected card links")

	return links
}

// olx cards carry site-relative hrefs, otodom cards are already absolute
func (s *Scraper) absoluteUrl(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	return s.origin + href
}

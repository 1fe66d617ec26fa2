package internal

import (
	"errors"
	"github.com/flatwatch/olx-estate-notifier/internal/log"
	"github.com/flatwatch/olx-estate-notifier/internal/util"
	"github.com/sirupsen/logrus"
	"strings"
)

// SurfaceAreaLabel is the localized marker of the surface-area feature line.
// Known-fragile: if the site changes the label's localization the filter
// silently stops applying, it never rejects items on its own.
const SurfaceAreaLabel = "Powierzchnia"

// PassesFilters applies a subscriber's numeric filters to one listing.
// Comparisons are strict: a listing priced exactly at the minimum passes.
// Unparseable price or surface text skips the affected filter with a warning
// instead of rejecting the item.
func PassesFilters(rec ListingRecord, sub Subscriber, logger log.Logger) bool {
	if sub.MinPriceFilter != nil || sub.MaxPriceFilter != nil {
		price, err := util.DigitValue(rec.Price)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"Title": rec.Title,
				"Price": rec.Price,
			}).Warn("could not parse price, skipping price filter")
		} else {
			if sub.MinPriceFilter != nil && price < *sub.MinPriceFilter {
				return false
			}
			if sub.MaxPriceFilter != nil && price > *sub.MaxPriceFilter {
				return false
			}
		}
	}

	if sub.MinSurfaceAreaFilter != nil {
		if surface, ok := surfaceArea(rec.Features, logger); ok {
			if surface < *sub.MinSurfaceAreaFilter {
				return false
			}
		}
	}

	return true
}

func surfaceArea(features []string, logger log.Logger) (int, bool) {
	for _, feature := range features {
		if !strings.Contains(feature, SurfaceAreaLabel) {
			continue
		}

		value, err := util.DigitValue(feature)
		if err != nil {
			if errors.Is(err, util.ErrNoDigits) {
				logger.WithField("Feature", feature).Warn("could not parse surface area, skipping surface filter")
			}
			return 0, false
		}

		return value, true
	}

	return 0, false
}

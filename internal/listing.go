package internal

import (
	"net/url"
	"strings"
)

// FieldUnavailable is substituted for any listing field whose extraction failed.
const FieldUnavailable = "N/A"

// PlaceholderImage is used when a listing page carries no usable cover image.
const PlaceholderImage = "https://www.olx.pl/app/static/media/staticmap.65e20ad98.svg"

const (
	DefaultBuildingType = "mieszkania"
	DefaultAdType       = "wynajem"
)

type SiteVariant int

const (
	SiteUnknown SiteVariant = iota
	SiteOLX
	SiteOtodom
)

func (s SiteVariant) String() string {
	switch s {
	case SiteOLX:
		return "olx"
	case SiteOtodom:
		return "otodom"
	}

	return "unknown"
}

// ResolveSite determines the marketplace a detail-page url belongs to from its host.
func ResolveSite(rawURL string) (SiteVariant, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return SiteUnknown, false
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch {
	case host == "olx.pl" || strings.HasSuffix(host, ".olx.pl"):
		return SiteOLX, true
	case host == "otodom.pl" || strings.HasSuffix(host, ".otodom.pl"):
		return SiteOtodom, true
	}

	return SiteUnknown, false
}

// ListingRecord is one normalized listing scraped from a detail page.
// Any field may hold FieldUnavailable when its extraction failed;
// ItemLink is always present and serves as the per-user dedup key.
type ListingRecord struct {
	Title           string
	Price           string
	Location        string
	PublicationTime string
	Features        []string
	ItemLink        string
	ItemImage       string
}

// TaggedLink is a detail-page url together with the marketplace it resolves to.
type TaggedLink struct {
	URL  string
	Site SiteVariant
}

// Bucket identifies one (transaction type, building type) result set within a city.
type Bucket struct {
	AdType       string
	BuildingType string
}

// CityListings holds one scan cycle's results for a single city, newest-first.
type CityListings map[Bucket][]ListingRecord

// Subscriber is the read-only projection of a bot user the scan cycle consumes.
// Nil filter values mean the filter is not set.
type Subscriber struct {
	UserId               int64
	ChatId               int64
	City                 string
	BuildingTypeFilter   string
	AdTypeFilter         string
	MinPriceFilter       *int
	MaxPriceFilter       *int
	MinSurfaceAreaFilter *int
}

// Bucket returns the result bucket this subscriber reads, falling back to defaults.
func (s Subscriber) Bucket() Bucket {
	b := Bucket{AdType: s.AdTypeFilter, BuildingType: s.BuildingTypeFilter}
	if b.AdType == "" {
		b.AdType = DefaultAdType
	}
	if b.BuildingType == "" {
		b.BuildingType = DefaultBuildingType
	}

	return b
}

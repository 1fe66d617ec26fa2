package selector

type Selector string

func (s Selector) String() string {
	return string(s)
}

// olx.pl
const (
	OlxCard          Selector = "div[data-testid=\"l-card\"]"
	OlxPromotedBadge Selector = "[class=\"css-1dyfc0k\"]"
	OlxCardLink      Selector = "a"
	OlxTitle         Selector = "h4[class*=\"css-1kc83jo\"]"
	OlxPrice         Selector = "h3[data-testid=\"ad-price-container\"]"
	OlxPostedAt      Selector = "span[data-cy=\"ad-posted-at\"]"
	OlxLocation      Selector = "p[class*=\"css-1cju8pu\"]"
	OlxFeatureItem   Selector = "ul[class*=\"css-rn93um\"] li"
	OlxImage         Selector = "img[srcset]"
)

// otodom.pl
const (
	OtodomTitle       Selector = "h1[data-cy=\"adPageAdTitle\"]"
	OtodomPrice       Selector = "strong[data-cy=\"adPageHeaderPrice\"]"
	OtodomPostedAt    Selector = "p[data-sentry-component=\"AdHeaderDates\"]"
	OtodomLocation    Selector = "a[href=\"#map\"]"
	OtodomFeatureItem Selector = "div[data-sentry-component=\"AdDetailsBase\"] p"
	OtodomImage       Selector = "picture img[src]"
)

package scraper

import (
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"github.com/flatwatch/olx-estate-notifier/internal"
	"github.com/flatwatch/olx-estate-notifier/internal/log"
	"github.com/flatwatch/olx-estate-notifier/internal/selector"
	"github.com/flatwatch/olx-estate-notifier/internal/util"
	"slices"
	"strings"
	"time"
)

// ExtractOLX maps one olx.pl detail page to a normalized record. Every field
// is extracted independently: a missing element degrades to the "N/A"
// sentinel (placeholder url for the image) and the rest of the record is
// still populated. Only a page where both primary fields are gone yields an
// error instead of a record.
func ExtractOLX(doc *goquery.Document, pageUrl string) (*internal.ListingRecord, error) {
	logger := log.GetLogger().WithField("Url", pageUrl)

	title, titleErr := elementText(doc, selector.OlxTitle)
	price, priceErr := elementText(doc, selector.OlxPrice)

	if titleErr != nil && priceErr != nil {
		return nil, fmt.Errorf("page has no recognizable listing markup: %w", titleErr)
	}

	if priceErr == nil {
		// "3 500 zł do negocjacji" -> "3 500 zł"
		price = util.CleanText(strings.SplitN(price, "do negocjacji", 2)[0])
	}

	posted, postedErr := elementText(doc, selector.OlxPostedAt)
	if postedErr == nil {
		// "Dzisiaj o 14:30" -> "14:30", full dates pass through untouched
		parts := strings.Split(posted, " o ")
		posted = util.NormalizePublicationTime(parts[len(parts)-1], time.Now())
	}

	location, locationErr := elementText(doc, selector.OlxLocation)

	features := elementTexts(doc, selector.OlxFeatureItem)

	image, imageErr := olxCoverImage(doc)

	return &internal.ListingRecord{
		Title:           fold(title, titleErr, logger),
		Price:           fold(price, priceErr, logger),
		Location:        fold(location, locationErr, logger),
		PublicationTime: fold(posted, postedErr, logger),
		Features:        features,
		ItemLink:        pageUrl,
		ItemImage:       foldImage(image, imageErr, logger),
	}, nil
}

// ExtractOtodom maps one otodom.pl detail page to the same record shape.
func ExtractOtodom(doc *goquery.Document, pageUrl string) (*internal.ListingRecord, error) {
	logger := log.GetLogger().WithField("Url", pageUrl)

	title, titleErr := elementText(doc, selector.OtodomTitle)
	price, priceErr := elementText(doc, selector.OtodomPrice)

	if titleErr != nil && priceErr != nil {
		return nil, fmt.Errorf("page has no recognizable listing markup: %w", titleErr)
	}

	posted, postedErr := elementText(doc, selector.OtodomPostedAt)
	if postedErr == nil {
		posted = util.NormalizePublicationTime(posted, time.Now())
	}

	location, locationErr := elementText(doc, selector.OtodomLocation)

	features := elementTexts(doc, selector.OtodomFeatureItem)

	image, imageErr := attrOf(doc, selector.OtodomImage, "src")

	return &internal.ListingRecord{
		Title:           fold(title, titleErr, logger),
		Price:           fold(price, priceErr, logger),
		Location:        fold(location, locationErr, logger),
		PublicationTime: fold(posted, postedErr, logger),
		Features:        features,
		ItemLink:        pageUrl,
		ItemImage:       foldImage(image, imageErr, logger),
	}, nil
}

func elementText(doc *goquery.Document, sel selector.Selector) (string, error) {
	node := doc.Find(sel.String()).First()
	if node.Length() == 0 {
		return "", internal.NewElementNotFoundError(sel)
	}

	return util.CleanText(node.Text()), nil
}

// elementTexts collects all matches and reverses them: the sites list
// feature lines bottom-up relative to display intent.
func elementTexts(doc *goquery.Document, sel selector.Selector) []string {
	var texts []string
	doc.Find(sel.String()).Each(func(_ int, node *goquery.Selection) {
		if text := util.CleanText(node.Text()); text != "" {
			texts = append(texts, text)
		}
	})

	slices.Reverse(texts)

	return texts
}

func attrOf(doc *goquery.Document, sel selector.Selector, attr string) (string, error) {
	node := doc.Find(sel.String()).First()
	if node.Length() == 0 {
		return "", internal.NewElementNotFoundError(sel)
	}

	value, ok := node.Attr(attr)
	if !ok || value == "" {
		return "", internal.NewElementNotFoundError(sel)
	}

	return value, nil
}

// the srcset's next-to-last token is the largest candidate url
func olxCoverImage(doc *goquery.Document) (string, error) {
	srcset, err := attrOf(doc, selector.OlxImage, "srcset")
	if err != nil {
		return "", err
	}

	fields := strings.Fields(srcset)
	if len(fields) < 2 {
		return "", internal.NewElementNotFoundError(selector.OlxImage)
	}

	return strings.TrimSuffix(fields[len(fields)-2], ","), nil
}

func fold(value string, err error, logger log.Logger) string {
	if err != nil {
		logger.WithError(err).Warn("field extraction failed, substituting sentinel")
		return internal.FieldUnavailable
	}

	return value
}

func foldImage(value string, err error, logger log.Logger) string {
	if err != nil {
		logger.WithError(err).Warn("cover image extraction failed, substituting placeholder")
		return internal.PlaceholderImage
	}

	return value
}

package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/flatwatch/olx-estate-notifier/internal"
	"regexp"
	"strings"
	"testing"
)

const olxDetailPage = `<html><body>
<h4 class="css-1kc83jo">Mieszkanie 2-pokojowe, Krowodrza</h4>
<h3 data-testid="ad-price-container">2 500 zł do negocjacji</h3>
<span data-cy="ad-posted-at">Dzisiaj o 12:30</span>
<p class="css-1cju8pu">Kraków, Krowodrza</p>
<ul class="css-rn93um">
  <li>Umeblowane: Tak</li>
  <li>Powierzchnia: 45 m²</li>
</ul>
<img srcset="https://img.olx.pl/a.jpg 200w, https://img.olx.pl/b.jpg 600w" src="https://img.olx.pl/a.jpg">
</body></html>`

func docFrom(t *testing.T, page string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}

	return doc
}

func TestExtractOLX(t *testing.T) {
	const pageUrl = "https://www.olx.pl/d/oferta/mieszkanie-ID1.html"

	rec, err := ExtractOLX(docFrom(t, olxDetailPage), pageUrl)
	if err != nil {
		t.Fatal(err)
	}

	if rec.Title != "Mieszkanie 2-pokojowe, Krowodrza" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Price != "2 500 zł" {
		t.Errorf("Price = %q, negotiable suffix must be stripped", rec.Price)
	}
	if rec.Location != "Kraków, Krowodrza" {
		t.Errorf("Location = %q", rec.Location)
	}
	if rec.ItemLink != pageUrl {
		t.Errorf("ItemLink = %q", rec.ItemLink)
	}

	// "Dzisiaj o 12:30" ends up as a local time of day
	if !regexp.MustCompile(`^\d{2}:\d{2}$`).MatchString(rec.PublicationTime) {
		t.Errorf("PublicationTime = %q, want HH:MM", rec.PublicationTime)
	}

	// feature lines are listed bottom-up in the markup
	want := []string{"Powierzchnia: 45 m²", "Umeblowane: Tak"}
	if len(rec.Features) != len(want) {
		t.Fatalf("Features = %v", rec.Features)
	}
	for i := range want {
		if rec.Features[i] != want[i] {
			t.Errorf("Features[%d] = %q, want %q", i, rec.Features[i], want[i])
		}
	}

	// the srcset's next-to-last token is the largest candidate
	if rec.ItemImage != "https://img.olx.pl/b.jpg" {
		t.Errorf("ItemImage = %q", rec.ItemImage)
	}
}

func TestExtractOLX_missingPriceIsIsolated(t *testing.T) {
	page := strings.Replace(olxDetailPage, `data-testid="ad-price-container"`, `data-testid="something-else"`, 1)

	rec, err := ExtractOLX(docFrom(t, page), "https://www.olx.pl/d/oferta/x.html")
	if err != nil {
		t.Fatalf("single missing field must not fail the record: %v", err)
	}

	if rec.Price != internal.FieldUnavailable {
		t.Errorf("Price = %q, want sentinel", rec.Price)
	}
	if rec.Title == internal.FieldUnavailable || rec.Location == internal.FieldUnavailable {
		t.Error("other fields degraded alongside the missing price")
	}
}

func TestExtractOLX_missingImageGetsPlaceholder(t *testing.T) {
	page := strings.Replace(olxDetailPage, "srcset", "data-x", 1)

	rec, err := ExtractOLX(docFrom(t, page), "https://www.olx.pl/d/oferta/x.html")
	if err != nil {
		t.Fatal(err)
	}

	if rec.ItemImage != internal.PlaceholderImage {
		t.Errorf("ItemImage = %q, want placeholder", rec.ItemImage)
	}
}

func TestExtractOLX_unrecognizablePageIsDropped(t *testing.T) {
	_, err := ExtractOLX(docFrom(t, "<html><body><p>strona nie istnieje</p></body></html>"), "https://www.olx.pl/x")
	if err == nil {
		t.Fatal("page without primary fields must yield no record")
	}
}

func TestExtractOtodom(t *testing.T) {
	const page = `<html><body>
<h1 data-cy="adPageAdTitle">Kawalerka przy rynku</h1>
<strong data-cy="adPageHeaderPrice">1 900 zł</strong>
<p data-sentry-component="AdHeaderDates">3 maja 2025</p>
<a href="#map">Wrocław, Stare Miasto</a>
<div data-sentry-component="AdDetailsBase">
  <p>Czynsz: 450 zł</p>
  <p>Powierzchnia: 28 m²</p>
</div>
<picture><img src="https://img.otodom.pl/c.jpg"></picture>
</body></html>`

	rec, err := ExtractOtodom(docFrom(t, page), "https://www.otodom.pl/pl/oferta/kawalerka-ID2")
	if err != nil {
		t.Fatal(err)
	}

	if rec.Title != "Kawalerka przy rynku" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Price != "1 900 zł" {
		t.Errorf("Price = %q", rec.Price)
	}
	if rec.PublicationTime != "03.05.2025" {
		t.Errorf("PublicationTime = %q", rec.PublicationTime)
	}
	if rec.Location != "Wrocław, Stare Miasto" {
		t.Errorf("Location = %q", rec.Location)
	}
	if len(rec.Features) != 2 || rec.Features[0] != "Powierzchnia: 28 m²" {
		t.Errorf("Features = %v, want reversed markup order", rec.Features)
	}
	if rec.ItemImage != "https://img.otodom.pl/c.jpg" {
		t.Errorf("ItemImage = %q", rec.ItemImage)
	}
}

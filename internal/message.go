package internal

import (
	"fmt"
	"html"
	"strings"
)

// transport caps caption length, long locations get cut early
const locationMaxRunes = 40

// RenderCaption formats one listing for delivery using the inline HTML
// subset the transport accepts (bold, italic, hyperlink).
func RenderCaption(rec ListingRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<strong><a href=\"%s\">%s</a></strong>\n\n",
		rec.ItemLink, html.EscapeString(rec.Title))
	fmt.Fprintf(&b, "%s | %s\n", html.EscapeString(rec.Price), html.EscapeString(truncateLocation(rec.Location)))
	fmt.Fprintf(&b, "Published: %s\n", html.EscapeString(rec.PublicationTime))

	if len(rec.Features) > 0 {
		b.WriteString("\nFeatures:\n")
		for _, feature := range rec.Features {
			fmt.Fprintf(&b, "▫️ %s\n", html.EscapeString(feature))
		}
	}

	return b.String()
}

func truncateLocation(location string) string {
	runes := []rune(location)
	if len(runes) <= locationMaxRunes {
		return location
	}

	return string(runes[:locationMaxRunes]) + "..."
}

package scraper

import (
	"context"
	"github.com/flatwatch/olx-estate-notifier/internal"
	"net/http"
)

// ValidateCity checks that a normalized city slug resolves to a real index
// page. Invoked at registration time only, never from inside the scan cycle.
func (s *Scraper) ValidateCity(ctx context.Context, slug string) (bool, error) {
	indexUrl := s.indexUrl(slug, internal.DefaultBuildingType, internal.DefaultAdType)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, indexUrl, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

package scraper

import (
	"context"
	"sync/atomic"

	"materiaux-scraper/config"
	"materiaux-scraper/extract"
	"materiaux-scraper/models"
	"materiaux-scraper/utils"
)

// Enrich visits detail pages for listings that came off the listing grid
// without a price, applying the same selector lists to the full page.
// Listings without a detail URL are left as-is. Enrichment is best-effort:
// a failed detail fetch never drops the listing.
func (s *Scraper) Enrich(ctx context.Context, listings []*models.RawListing) int {
	bySite := make(map[string]*config.SiteConfig, len(s.sites))
	for i := range s.sites {
		bySite[s.sites[i].Name] = &s.sites[i]
	}

	var candidates []*models.RawListing
	for _, raw := range listings {
		if raw.PriceRaw == "" && raw.URL != "" {
			candidates = append(candidates, raw)
		}
	}
	if len(candidates) == 0 {
		return 0
	}

	s.logger.Info("[enrich] fetching %d detail pages for missing prices", len(candidates))

	// Resolve fetchers before entering the pool: fetcherFor lazily starts
	// the browser and must not be called concurrently.
	fetchers := make(map[string]Fetcher, len(bySite))
	for _, raw := range candidates {
		site, ok := bySite[raw.SourceSite]
		if !ok {
			continue
		}
		if _, done := fetchers[site.Name]; done {
			continue
		}
		f, err := s.fetcherFor(site)
		if err != nil {
			s.logger.Warn("[enrich] %s: %v", site.Name, err)
			continue
		}
		fetchers[site.Name] = f
	}

	var enriched int64
	pool := utils.NewWorkerPool(s.cfg.MaxConcurrency, s.cfg.RateLimitMs)
	for _, raw := range candidates {
		raw := raw
		site, ok := bySite[raw.SourceSite]
		if !ok {
			continue
		}
		fetcher, ok := fetchers[site.Name]
		if !ok {
			continue
		}
		pool.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			if s.enrichOne(ctx, fetcher, site, raw) {
				atomic.AddInt64(&enriched, 1)
			}
		})
	}
	pool.Wait()

	s.logger.Info("[enrich] recovered prices for %d/%d listings", enriched, len(candidates))
	return int(enriched)
}

// enrichOne fetches one detail page and fills in whatever listing fields
// are still empty. Returns true when a price was recovered.
func (s *Scraper) enrichOne(ctx context.Context, fetcher Fetcher, site *config.SiteConfig, raw *models.RawListing) bool {
	doc, err := fetcher.Fetch(ctx, raw.URL)
	if err != nil {
		s.logger.Debug("[enrich] %s: %v", raw.URL, err)
		return false
	}

	if res := extract.FirstText(doc.Selection, site.Selectors.Price); res.OK() {
		raw.PriceRaw = res.Value
	}
	if raw.Description == "" {
		if res := extract.FirstText(doc.Selection, site.Selectors.Description); res.OK() {
			raw.Description = res.Value
		}
	}
	if raw.ImageURL == "" {
		if res := extract.FirstAttr(doc.Selection, site.Selectors.Image, "src", "data-src"); res.OK() {
			raw.ImageURL = resolveURL(raw.URL, res.Value)
		}
	}
	return raw.PriceRaw != ""
}

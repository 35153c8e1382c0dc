// Package scraper drives the configuration-based scraping of all target
// sites: one shared pagination loop, one extraction path, per-site
// outcome counts instead of swallowed errors.
package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"materiaux-scraper/config"
	"materiaux-scraper/models"
	"materiaux-scraper/utils"
)

// SeenStore remembers listing URLs across runs so repeated scrapes skip
// listings already collected. A nil SeenStore disables cross-run dedup.
type SeenStore interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string, ttl time.Duration) error
}

// Scraper walks every enabled site and collects raw listings.
type Scraper struct {
	cfg    *config.Config
	sites  []config.SiteConfig
	logger *utils.Logger
	seen   SeenStore
	urls   *utils.URLSet
	retry  *utils.RetryConfig

	static  Fetcher
	browser Fetcher
}

// New creates a ready-to-use Scraper. seen may be nil.
func New(cfg *config.Config, sites []config.SiteConfig, logger *utils.Logger, seen SeenStore) *Scraper {
	return &Scraper{
		cfg:    cfg,
		sites:  sites,
		logger: logger,
		seen:   seen,
		urls:   utils.NewURLSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		static: NewStaticFetcher(time.Duration(cfg.HTTPTimeoutSec) * time.Second),
	}
}

// Run scrapes all enabled sites sequentially and returns the collected
// raw listings plus the run report. A failing site never aborts the run.
func (s *Scraper) Run(ctx context.Context) ([]*models.RawListing, *models.RunReport) {
	report := &models.RunReport{StartedAt: time.Now()}
	var all []*models.RawListing

	for i := range s.sites {
		site := &s.sites[i]
		if site.Disabled {
			s.logger.Debug("[scraper] %s disabled, skipping", site.Name)
			continue
		}
		if ctx.Err() != nil {
			s.logger.Warn("[scraper] run cancelled after %d listings", len(all))
			break
		}

		listings, siteReport := s.scrapeSite(ctx, site)
		all = append(all, listings...)
		report.Sites = append(report.Sites, siteReport)

		s.logger.Info("[scraper] %s done — %d listings kept (%d pages, %d failed)",
			site.Name, siteReport.ListingsKept, siteReport.PagesFetched, siteReport.PagesFailed)

		utils.SleepJitter(ctx,
			time.Duration(s.cfg.MinDelayMs)*time.Millisecond,
			time.Duration(s.cfg.MaxDelayMs)*time.Millisecond)
	}

	report.FinishedAt = time.Now()
	return all, report
}

// Close releases the browser if one was started.
func (s *Scraper) Close() {
	if s.browser != nil {
		_ = s.browser.Close()
	}
}

func (s *Scraper) fetcherFor(site *config.SiteConfig) (Fetcher, error) {
	if site.Fetcher != config.FetchBrowser {
		return s.static, nil
	}
	if s.browser == nil {
		b, err := NewBrowserFetcher(s.cfg)
		if err != nil {
			return nil, fmt.Errorf("scraper: start browser: %w", err)
		}
		s.browser = b
	}
	return s.browser, nil
}

// scrapeSite runs the shared pagination loop for one site. The loop stops
// when the strategy yields no next page, a page has no listings, the page
// cap is reached, or the context is cancelled. A page that keeps failing
// is skipped when the next URL does not depend on its document.
func (s *Scraper) scrapeSite(ctx context.Context, site *config.SiteConfig) ([]*models.RawListing, *models.SiteReport) {
	report := &models.SiteReport{Site: site.Name}
	var listings []*models.RawListing

	fetcher, err := s.fetcherFor(site)
	if err != nil {
		s.logger.Error("[scraper] %s: %v", site.Name, err)
		report.PagesFailed++
		return nil, report
	}

	s.logger.Info("[scraper] %s — starting at %s (cap %d pages)", site.Name, site.BaseURL, site.MaxPages)

	currentURL := site.BaseURL
	for page := 1; page <= site.MaxPages; page++ {
		if ctx.Err() != nil {
			break
		}

		var doc *goquery.Document
		err := s.retry.Do(ctx, fmt.Sprintf("%s-page-%d", site.Name, page), func() error {
			var ferr error
			doc, ferr = fetcher.Fetch(ctx, currentURL)
			return ferr
		})
		if err != nil {
			s.logger.Error("[scraper] %s page %d failed: %v", site.Name, page, err)
			report.PagesFailed++
			// Skip the page when the next URL can be derived without its
			// document (page_param, hash_param). next_link needs the failed
			// page's markup, so there the loop has to stop.
			nextURL, ok := NextPageURL(site, nil, currentURL, page+1)
			if !ok {
				break
			}
			currentURL = nextURL
			utils.SleepJitter(ctx,
				time.Duration(s.cfg.MinDelayMs)*time.Millisecond,
				time.Duration(s.cfg.MaxDelayMs)*time.Millisecond)
			continue
		}
		report.PagesFetched++

		pageListings, misses := s.collectPage(ctx, site, doc, currentURL, page, report)
		if len(pageListings) == 0 && report.ListingsFound == 0 {
			s.logger.Warn("[scraper] %s page %d matched no listings — check selectors", site.Name, page)
		}
		report.FieldMisses += misses
		listings = append(listings, pageListings...)

		if len(pageListings) == 0 {
			break
		}

		nextURL, ok := NextPageURL(site, doc, currentURL, page+1)
		if !ok {
			s.logger.Debug("[scraper] %s: no page after %d", site.Name, page)
			break
		}
		currentURL = nextURL

		utils.SleepJitter(ctx,
			time.Duration(s.cfg.MinDelayMs)*time.Millisecond,
			time.Duration(s.cfg.MaxDelayMs)*time.Millisecond)
	}

	return listings, report
}

// collectPage extracts every listing container on one page.
func (s *Scraper) collectPage(ctx context.Context, site *config.SiteConfig, doc *goquery.Document, pageURL string, pageNum int, report *models.SiteReport) ([]*models.RawListing, int) {
	var pageListings []*models.RawListing
	totalMisses := 0
	now := time.Now()

	containers := doc.Find(joinSelectors(site.Selectors.Listing))
	s.logger.Debug("[scraper] %s page %d — %d containers", site.Name, pageNum, containers.Length())

	containers.Each(func(_ int, node *goquery.Selection) {
		raw, misses := buildListing(site, node, pageURL, pageNum, now)
		totalMisses += misses
		if raw == nil {
			return
		}
		report.ListingsFound++

		if !s.admit(ctx, site, raw, report) {
			return
		}
		pageListings = append(pageListings, raw)
		report.ListingsKept++
	})

	return pageListings, totalMisses
}

// admit applies within-run and cross-run URL dedup. Listings without a
// detail URL are always admitted; dedup by name happens at cleaning time.
func (s *Scraper) admit(ctx context.Context, site *config.SiteConfig, raw *models.RawListing, report *models.SiteReport) bool {
	if raw.URL == "" {
		return true
	}

	if !s.urls.Add(raw.URL) {
		report.DuplicatesSkipped++
		return false
	}

	if s.seen == nil {
		return true
	}
	key := site.Name + "|" + raw.URL
	seen, err := s.seen.Seen(ctx, key)
	if err != nil {
		s.logger.Warn("[scraper] seen-store lookup failed: %v", err)
		return true
	}
	if seen {
		report.DuplicatesSkipped++
		return false
	}
	ttl := time.Duration(s.cfg.SeenTTLHours) * time.Hour
	if err := s.seen.Mark(ctx, key, ttl); err != nil {
		s.logger.Warn("[scraper] seen-store mark failed: %v", err)
	}
	return true
}

func joinSelectors(candidates []string) string {
	return strings.Join(candidates, ", ")
}

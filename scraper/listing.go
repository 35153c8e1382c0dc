package scraper

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"materiaux-scraper/config"
	"materiaux-scraper/extract"
	"materiaux-scraper/models"
)

// buildListing turns one listing container node into a RawListing using
// the site's selector lists. It returns nil when the name is missing —
// the only admission criterion at scrape time. The second return value
// counts the fields that stayed empty, for the site report.
func buildListing(site *config.SiteConfig, node *goquery.Selection, pageURL string, pageNum int, now time.Time) (*models.RawListing, int) {
	sel := site.Selectors
	misses := 0

	name := extract.FirstText(node, sel.Name)
	if !name.OK() {
		return nil, 0
	}

	text := func(candidates []string) string {
		if len(candidates) == 0 {
			return ""
		}
		res := extract.FirstText(node, candidates)
		if !res.OK() {
			misses++
			return ""
		}
		return res.Value
	}
	attr := func(candidates []string, attrs ...string) string {
		if len(candidates) == 0 {
			return ""
		}
		res := extract.FirstAttr(node, candidates, attrs...)
		if !res.OK() {
			misses++
			return ""
		}
		return resolveURL(pageURL, res.Value)
	}

	raw := &models.RawListing{
		Name:        name.Value,
		PriceRaw:    text(sel.Price),
		Description: text(sel.Description),
		ImageURL:    attr(sel.Image, "src", "data-src"),
		URL:         attr(sel.DetailURL, "href"),
		SourceSite:  site.Name,
		SourceURL:   pageURL,
		PageNumber:  pageNum,
		ScrapedAt:   now,
	}

	switch site.Kind {
	case "property":
		raw.Kind = models.KindProperty
		raw.Location = text(sel.Location)
		raw.Bedrooms = text(sel.Bedrooms)
		raw.Bathrooms = text(sel.Bathrooms)
		raw.AreaRaw = text(sel.Area)
		raw.PropertyType = text(sel.PropertyType)
		raw.Features = text(sel.Features)
	default:
		raw.Kind = models.KindMaterial
	}

	return raw, misses
}

package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"materiaux-scraper/extract"
	"materiaux-scraper/models"
	"materiaux-scraper/utils"
)

// Cleaner turns raw listings into validated Material and Property records.
// Admission requires a name longer than 3 runes containing at least one
// letter; duplicates within a batch are keyed on (normalized name, site).
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// CleanMaterials processes the material listings in a raw batch. Listings
// of other kinds are ignored, not counted.
func (c *Cleaner) CleanMaterials(raw []*models.RawListing) ([]*models.Material, *models.CleanStats) {
	stats := &models.CleanStats{}
	seen := make(map[string]struct{})
	var result []*models.Material

	for _, r := range raw {
		if r.Kind != models.KindMaterial {
			continue
		}
		stats.Input++

		name := extract.CollapseSpace(r.Name)
		if !admissibleName(name) {
			c.logger.Debug("[cleaner] dropping material with unusable name %q", r.Name)
			stats.Dropped++
			continue
		}

		key := strings.ToLower(name) + "|" + r.SourceSite
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		m := &models.Material{
			Name:        name,
			PriceRaw:    r.PriceRaw,
			Description: extract.CollapseSpace(r.Description),
			ImageURL:    r.ImageURL,
			SourceSite:  r.SourceSite,
			SourceURL:   r.SourceURL,
			PageNumber:  r.PageNumber,
			ScrapedAt:   r.ScrapedAt,
		}

		price, res := extract.PriceOf(r.PriceRaw)
		switch res.Outcome {
		case extract.Found:
			m.Price = &price
			m.PriceRange = PriceRange(price)
		case extract.ParseError:
			stats.ParseErrors++
		}

		m.Unit = extract.InferUnit(name + " " + m.Description + " " + r.PriceRaw)
		m.Category = extract.Categorize(name, m.Description)

		result = append(result, m)
		stats.Kept++
	}

	c.logger.Info("[cleaner] materials: %d in → %d kept (%d dropped, %d duplicates, %d unparseable prices)",
		stats.Input, stats.Kept, stats.Dropped, stats.Duplicates, stats.ParseErrors)
	return result, stats
}

// CleanProperties processes the real-estate listings in a raw batch.
func (c *Cleaner) CleanProperties(raw []*models.RawListing) ([]*models.Property, *models.CleanStats) {
	stats := &models.CleanStats{}
	seen := make(map[string]struct{})
	var result []*models.Property

	for _, r := range raw {
		if r.Kind != models.KindProperty {
			continue
		}
		stats.Input++

		title := extract.CollapseSpace(r.Name)
		if !admissibleName(title) {
			c.logger.Debug("[cleaner] dropping property with unusable title %q", r.Name)
			stats.Dropped++
			continue
		}

		key := strings.ToLower(title) + "|" + r.SourceSite
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		p := &models.Property{
			Title:      title,
			PriceRaw:   r.PriceRaw,
			Location:   extract.NormalizeLocation(r.Location),
			Features:   extract.CollapseSpace(r.Features),
			ImageURL:   r.ImageURL,
			URL:        r.URL,
			SourceSite: r.SourceSite,
			PageNumber: r.PageNumber,
			ScrapedAt:  r.ScrapedAt,
		}

		price, res := extract.PriceOf(r.PriceRaw)
		switch res.Outcome {
		case extract.Found:
			p.Price = &price
		case extract.ParseError:
			stats.ParseErrors++
		}

		if n, ok := extract.ParseCount(r.Bedrooms); ok {
			p.Bedrooms = n
		}
		if n, ok := extract.ParseCount(r.Bathrooms); ok {
			p.Bathrooms = n
		}
		if area, ok := extract.ParseArea(r.AreaRaw); ok {
			p.Area = &area
		}

		p.PropertyType = extract.DetectPropertyType(r.PropertyType+" "+title, r.Features)

		result = append(result, p)
		stats.Kept++
	}

	c.logger.Info("[cleaner] properties: %d in → %d kept (%d dropped, %d duplicates, %d unparseable prices)",
		stats.Input, stats.Kept, stats.Dropped, stats.Duplicates, stats.ParseErrors)
	return result, stats
}

// PriceRange buckets a price for reporting. Buckets are fixed, in TND.
func PriceRange(price float64) string {
	switch {
	case price < 50:
		return "0-50 TND"
	case price < 200:
		return "50-200 TND"
	case price < 500:
		return "200-500 TND"
	case price < 1000:
		return "500-1000 TND"
	default:
		return "1000+ TND"
	}
}

func admissibleName(name string) bool {
	if utf8.RuneCountInString(name) <= 3 {
		return false
	}
	for _, r := range name {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"materiaux-scraper/models"
)

// WriteRawListingsCSV dumps every raw listing to a CSV file, one row per
// listing, materials and properties alike. Intermediate directories are
// created automatically.
func WriteRawListingsCSV(path string, listings []*models.RawListing) error {
	w, f, err := newCSVFile(path, []string{
		"kind", "name", "price_raw", "description", "image_url", "url",
		"location", "bedrooms", "bathrooms", "area_raw", "property_type",
		"source_site", "source_url", "page_number", "scraped_at",
	})
	if err != nil {
		return err
	}
	defer f.Close()

	for _, l := range listings {
		row := []string{
			string(l.Kind),
			l.Name,
			l.PriceRaw,
			l.Description,
			l.ImageURL,
			l.URL,
			l.Location,
			l.Bedrooms,
			l.Bathrooms,
			l.AreaRaw,
			l.PropertyType,
			l.SourceSite,
			l.SourceURL,
			strconv.Itoa(l.PageNumber),
			l.ScrapedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// WriteMaterialsCSV writes the cleaned material catalog to a CSV file.
// The column layout is what ReadMaterialsCSV expects back.
func WriteMaterialsCSV(path string, materials []*models.Material) error {
	w, f, err := newCSVFile(path, []string{
		"name", "price", "price_raw", "unit", "category", "price_range",
		"description", "image_url", "source_site", "source_url", "scraped_at",
	})
	if err != nil {
		return err
	}
	defer f.Close()

	for _, m := range materials {
		row := []string{
			m.Name,
			formatPrice(m.Price),
			m.PriceRaw,
			m.Unit,
			m.Category,
			m.PriceRange,
			m.Description,
			m.ImageURL,
			m.SourceSite,
			m.SourceURL,
			m.ScrapedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// WritePropertiesCSV writes the cleaned real-estate records to a CSV file.
func WritePropertiesCSV(path string, properties []*models.Property) error {
	w, f, err := newCSVFile(path, []string{
		"title", "price", "price_raw", "location", "bedrooms", "bathrooms",
		"area", "property_type", "features", "url", "source_site", "scraped_at",
	})
	if err != nil {
		return err
	}
	defer f.Close()

	for _, p := range properties {
		row := []string{
			p.Title,
			formatPrice(p.Price),
			p.PriceRaw,
			p.Location,
			strconv.Itoa(p.Bedrooms),
			strconv.Itoa(p.Bathrooms),
			formatPrice(p.Area),
			p.PropertyType,
			p.Features,
			p.URL,
			p.SourceSite,
			p.ScrapedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// ReadMaterialsCSV loads a material catalog previously written by
// WriteMaterialsCSV. Rows whose price column is empty get a nil Price.
func ReadMaterialsCSV(path string) ([]*models.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open catalog %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 11

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read catalog %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var materials []*models.Material
	for i, row := range rows[1:] { // skip header
		m := &models.Material{
			Name:        row[0],
			PriceRaw:    row[2],
			Unit:        row[3],
			Category:    row[4],
			PriceRange:  row[5],
			Description: row[6],
			ImageURL:    row[7],
			SourceSite:  row[8],
			SourceURL:   row[9],
		}
		if row[1] != "" {
			price, err := strconv.ParseFloat(row[1], 64)
			if err != nil {
				return nil, fmt.Errorf("csv: catalog row %d: bad price %q: %w", i+2, row[1], err)
			}
			m.Price = &price
		}
		if row[10] != "" {
			if ts, err := time.Parse(time.RFC3339, row[10]); err == nil {
				m.ScrapedAt = ts
			}
		}
		materials = append(materials, m)
	}
	return materials, nil
}

func newCSVFile(path string, header []string) (*csv.Writer, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("csv: write header: %w", err)
	}
	return w, f, nil
}

func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

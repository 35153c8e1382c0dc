package models

import "time"

// ListingKind distinguishes construction-material listings from
// real-estate listings. Both kinds share the RawListing shape.
type ListingKind string

const (
	KindMaterial ListingKind = "material"
	KindProperty ListingKind = "property"
)

// RawListing holds one entry exactly as matched on a listing page, before
// any cleaning. Fields the page did not expose stay empty; an empty field
// means "unknown", not an error. Property-only fields stay empty for
// material sites.
type RawListing struct {
	Kind        ListingKind `json:"kind"`
	Name        string      `json:"name"`
	PriceRaw    string      `json:"price_raw"`
	Description string      `json:"description,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	URL         string      `json:"url,omitempty"`

	// Real-estate extras, raw text as scraped.
	Location     string `json:"location,omitempty"`
	Bedrooms     string `json:"bedrooms,omitempty"`
	Bathrooms    string `json:"bathrooms,omitempty"`
	AreaRaw      string `json:"area_raw,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
	Features     string `json:"features,omitempty"`

	SourceSite string    `json:"source_site"`
	SourceURL  string    `json:"source_url"`
	PageNumber int       `json:"page_number"`
	ScrapedAt  time.Time `json:"scraped_at"`
}

// Material is the cleaned, validated construction-material record.
// Price is nil when the page showed no parseable price; downstream
// consumers must tolerate that.
type Material struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	Price       *float64  `json:"price"`
	PriceRaw    string    `json:"price_raw"`
	Unit        string    `json:"unit"`
	Category    string    `json:"category"`
	PriceRange  string    `json:"price_range,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	SourceSite  string    `json:"source_site"`
	SourceURL   string    `json:"source_url"`
	PageNumber  int       `json:"page_number"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// Property is the cleaned real-estate record.
type Property struct {
	ID           int64     `json:"id,omitempty"`
	Title        string    `json:"title"`
	Price        *float64  `json:"price"`
	PriceRaw     string    `json:"price_raw"`
	Location     string    `json:"location,omitempty"`
	Bedrooms     int       `json:"bedrooms,omitempty"`
	Bathrooms    int       `json:"bathrooms,omitempty"`
	Area         *float64  `json:"area,omitempty"`
	PropertyType string    `json:"property_type,omitempty"`
	Features     string    `json:"features,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	URL          string    `json:"url,omitempty"`
	SourceSite   string    `json:"source_site"`
	PageNumber   int       `json:"page_number"`
	ScrapedAt    time.Time `json:"scraped_at"`
}

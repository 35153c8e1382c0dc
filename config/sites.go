package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// FetcherType selects how a site's pages are loaded.
type FetcherType string

const (
	// FetchStatic uses plain HTTP and parses the served HTML.
	FetchStatic FetcherType = "static"
	// FetchBrowser renders the page in headless Chrome first.
	FetchBrowser FetcherType = "browser"
)

// Pagination is the closed set of pagination strategies. Every site picks
// exactly one; the shared driver loop in the scraper package handles all
// of them.
type Pagination string

const (
	// PaginateNone scrapes a single page.
	PaginateNone Pagination = "none"
	// PaginatePageParam substitutes a page-number query parameter.
	PaginatePageParam Pagination = "page_param"
	// PaginateHashParam rewrites a page= entry inside the URL hash
	// fragment (remax.com.tn style).
	PaginateHashParam Pagination = "hash_param"
	// PaginateNextLink follows the next-page anchor located through a
	// selector-fallback list.
	PaginateNextLink Pagination = "next_link"
)

// Selectors holds the per-field selector candidate lists for one site.
// Each list is tried in order; the first selector yielding a non-empty
// value wins.
type Selectors struct {
	Listing      []string `yaml:"listing"`
	Name         []string `yaml:"name"`
	Price        []string `yaml:"price"`
	Description  []string `yaml:"description"`
	Image        []string `yaml:"image"`
	DetailURL    []string `yaml:"detail_url"`
	Location     []string `yaml:"location"`
	Bedrooms     []string `yaml:"bedrooms"`
	Bathrooms    []string `yaml:"bathrooms"`
	Area         []string `yaml:"area"`
	PropertyType []string `yaml:"property_type"`
	Features     []string `yaml:"features"`
	NextPage     []string `yaml:"next_page"`
}

// SiteConfig describes one target site: where it lives, how to load it,
// how to page through it, and which selectors find each field.
type SiteConfig struct {
	Name       string      `yaml:"name"`
	BaseURL    string      `yaml:"base_url"`
	Kind       string      `yaml:"kind"` // "material" or "property"
	Fetcher    FetcherType `yaml:"fetcher"`
	Pagination Pagination  `yaml:"pagination"`
	PageParam  string      `yaml:"page_param"`
	// MaxPages is a blunt safety cap on top of the natural termination
	// conditions, not a statement about how many pages the site has.
	MaxPages  int       `yaml:"max_pages"`
	Disabled  bool      `yaml:"disabled"`
	Selectors Selectors `yaml:"selectors"`
}

type sitesFile struct {
	Sites []SiteConfig `yaml:"sites"`
}

// LoadSites reads site configurations from a YAML file and validates them.
func LoadSites(path string) ([]SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sites: read %q: %w", path, err)
	}

	var f sitesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("sites: parse %q: %w", path, err)
	}
	if len(f.Sites) == 0 {
		return nil, fmt.Errorf("sites: %q defines no sites", path)
	}

	for i := range f.Sites {
		if err := normalizeSite(&f.Sites[i]); err != nil {
			return nil, fmt.Errorf("sites: %q: %w", f.Sites[i].Name, err)
		}
	}
	return f.Sites, nil
}

func normalizeSite(s *SiteConfig) error {
	if s.Name == "" {
		return fmt.Errorf("missing name")
	}
	if s.BaseURL == "" {
		return fmt.Errorf("missing base_url")
	}
	if s.Kind != "material" && s.Kind != "property" {
		return fmt.Errorf("kind must be material or property, got %q", s.Kind)
	}
	if len(s.Selectors.Listing) == 0 {
		return fmt.Errorf("missing listing selectors")
	}
	if len(s.Selectors.Name) == 0 {
		return fmt.Errorf("missing name selectors")
	}

	if s.Fetcher == "" {
		s.Fetcher = FetchStatic
	}
	if s.Pagination == "" {
		s.Pagination = PaginateNone
	}
	if s.Pagination == PaginatePageParam && s.PageParam == "" {
		s.PageParam = "p"
	}
	if s.MaxPages <= 0 {
		s.MaxPages = 1
	}

	switch s.Fetcher {
	case FetchStatic, FetchBrowser:
	default:
		return fmt.Errorf("unknown fetcher %q", s.Fetcher)
	}
	switch s.Pagination {
	case PaginateNone, PaginatePageParam, PaginateHashParam, PaginateNextLink:
	default:
		return fmt.Errorf("unknown pagination %q", s.Pagination)
	}
	return nil
}

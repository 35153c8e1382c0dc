package models

import "time"

// SiteReport counts the outcomes of one site's scrape pass. Counts replace
// silent error swallowing: a run always "completes", but the report says
// how much of it actually worked.
type SiteReport struct {
	Site              string `json:"site"`
	PagesFetched      int    `json:"pages_fetched"`
	PagesFailed       int    `json:"pages_failed"`
	ListingsFound     int    `json:"listings_found"`
	ListingsKept      int    `json:"listings_kept"`
	FieldMisses       int    `json:"field_misses"`
	DuplicatesSkipped int    `json:"duplicates_skipped"`
}

// RunReport aggregates all site reports for one scrape run.
type RunReport struct {
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Sites      []*SiteReport `json:"sites"`
}

// TotalKept sums the listings kept across all sites.
func (r *RunReport) TotalKept() int {
	total := 0
	for _, s := range r.Sites {
		total += s.ListingsKept
	}
	return total
}

// CleanStats counts what happened during cleaning of one listing batch.
type CleanStats struct {
	Input       int `json:"input"`
	Kept        int `json:"kept"`
	Dropped     int `json:"dropped"`
	Duplicates  int `json:"duplicates"`
	ParseErrors int `json:"price_parse_errors"`
}

// Offer is one supplier's price for a product inside a comparison group.
type Offer struct {
	Name  string  `json:"name"`
	Site  string  `json:"site"`
	Price float64 `json:"price"`
}

// PriceComparison is the result of comparing one group of similar products
// across suppliers.
type PriceComparison struct {
	Product       string  `json:"product"`
	Suppliers     int     `json:"suppliers"`
	MinPrice      float64 `json:"min_price"`
	MaxPrice      float64 `json:"max_price"`
	MeanPrice     float64 `json:"mean_price"`
	BestSupplier  string  `json:"best_supplier"`
	WorstSupplier string  `json:"worst_supplier"`
	Savings       float64 `json:"savings"`
	SavingsPct    float64 `json:"savings_pct"`
	Offers        []Offer `json:"offers"`
}

// CategoryStats holds per-category price aggregates.
type CategoryStats struct {
	Count       int      `json:"count"`
	WithPrice   int      `json:"with_price"`
	MinPrice    *float64 `json:"min_price"`
	MeanPrice   *float64 `json:"mean_price"`
	MedianPrice *float64 `json:"median_price"`
	MaxPrice    *float64 `json:"max_price"`
}

// MaterialInsights holds the computed statistics over a cleaned catalog.
type MaterialInsights struct {
	TotalMaterials int                      `json:"total_materials"`
	WithPrice      int                      `json:"with_price"`
	ByCategory     map[string]CategoryStats `json:"by_category"`
	BySite         map[string]int           `json:"by_site"`
	PriceRanges    map[string]int           `json:"price_ranges"`
	MostExpensive  *Material                `json:"most_expensive,omitempty"`
	MinPrice       float64                  `json:"min_price"`
	MeanPrice      float64                  `json:"mean_price"`
	MedianPrice    float64                  `json:"median_price"`
	MaxPrice       float64                  `json:"max_price"`
}

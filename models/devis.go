package models

import "time"

// Client identifies the recipient of a quote.
type Client struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Project describes what the quoted materials are for.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// DevisItem is one requested material with its quantity.
type DevisItem struct {
	Material string  `json:"material"`
	Quantity float64 `json:"quantity"`
}

// DevisRequest is the full input for quote generation.
type DevisRequest struct {
	Client  Client      `json:"client"`
	Project Project     `json:"project"`
	Items   []DevisItem `json:"items"`
}

// DevisOptions carries the commercial terms applied to a quote.
type DevisOptions struct {
	VATPct        float64 `json:"vat_pct"`
	DiscountPct   float64 `json:"discount_pct"`
	ValidityDays  int     `json:"validity_days"`
	PaymentTerms  string  `json:"payment_terms"`
	DeliveryDelay string  `json:"delivery_delay"`
}

// DevisLine is one priced row of a quote.
type DevisLine struct {
	Designation string  `json:"designation"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	TotalHT     float64 `json:"total_ht"`
	Supplier    string  `json:"supplier"`
}

// Devis is a complete generated quote, mirrored to text and JSON output.
type Devis struct {
	Number     string    `json:"number"`
	Date       time.Time `json:"date"`
	ValidUntil time.Time `json:"valid_until"`

	Client  Client  `json:"client"`
	Project Project `json:"project"`

	Lines []DevisLine `json:"lines"`
	// Requested materials that could not be resolved against the catalog.
	Missing []string `json:"missing,omitempty"`

	SubTotalHT     float64 `json:"sub_total_ht"`
	DiscountPct    float64 `json:"discount_pct"`
	DiscountAmount float64 `json:"discount_amount"`
	NetHT          float64 `json:"net_ht"`
	VATPct         float64 `json:"vat_pct"`
	VATAmount      float64 `json:"vat_amount"`
	TotalTTC       float64 `json:"total_ttc"`

	PaymentTerms  string `json:"payment_terms,omitempty"`
	DeliveryDelay string `json:"delivery_delay,omitempty"`
}

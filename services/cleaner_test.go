package services

import (
	"testing"
	"time"

	"materiaux-scraper/models"
	"materiaux-scraper/utils"
)

func testLogger() *utils.Logger {
	return utils.NewLogger(false)
}

func rawMaterial(name, priceRaw, site string) *models.RawListing {
	return &models.RawListing{
		Kind:       models.KindMaterial,
		Name:       name,
		PriceRaw:   priceRaw,
		SourceSite: site,
		SourceURL:  "https://" + site,
		ScrapedAt:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestCleanMaterialsFillsDerivedFields(t *testing.T) {
	cleaner := NewCleaner(testLogger())

	materials, stats := cleaner.CleanMaterials([]*models.RawListing{
		rawMaterial("Sac de ciment Portland 50kg", "25,50 DT", "brico-direct.tn"),
	})

	if stats.Kept != 1 {
		t.Fatalf("kept: got %d, want 1", stats.Kept)
	}
	m := materials[0]
	if m.Price == nil || *m.Price != 25.5 {
		t.Errorf("price: got %v, want 25.5", m.Price)
	}
	if m.Unit != "kg" {
		t.Errorf("unit: got %q, want kg", m.Unit)
	}
	if m.Category != "Ciment et béton" {
		t.Errorf("category: got %q", m.Category)
	}
	if m.PriceRange != "0-50 TND" {
		t.Errorf("price range: got %q", m.PriceRange)
	}
}

func TestCleanMaterialsAdmission(t *testing.T) {
	cleaner := NewCleaner(testLogger())

	tests := []struct {
		name    string
		listing *models.RawListing
		kept    int
		dropped int
	}{
		{"too short", rawMaterial("Vis", "1 DT", "a"), 0, 1},
		{"digits only", rawMaterial("12345", "1 DT", "a"), 0, 1},
		{"four letters pass", rawMaterial("Clou acier", "1 DT", "a"), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stats := cleaner.CleanMaterials([]*models.RawListing{tt.listing})
			if stats.Kept != tt.kept || stats.Dropped != tt.dropped {
				t.Errorf("kept/dropped: got %d/%d, want %d/%d",
					stats.Kept, stats.Dropped, tt.kept, tt.dropped)
			}
		})
	}
}

func TestCleanMaterialsDedupByNameAndSite(t *testing.T) {
	cleaner := NewCleaner(testLogger())

	materials, stats := cleaner.CleanMaterials([]*models.RawListing{
		rawMaterial("Ciment Portland 50kg", "25 DT", "brico-direct.tn"),
		rawMaterial("ciment portland 50kg", "26 DT", "brico-direct.tn"), // same name, same site
		rawMaterial("Ciment Portland 50kg", "27 DT", "comaf.tn"),       // same name, other site
	})

	if stats.Duplicates != 1 {
		t.Errorf("duplicates: got %d, want 1", stats.Duplicates)
	}
	if len(materials) != 2 {
		t.Errorf("materials: got %d, want 2", len(materials))
	}
}

func TestCleanMaterialsCountsUnparseablePrices(t *testing.T) {
	cleaner := NewCleaner(testLogger())

	materials, stats := cleaner.CleanMaterials([]*models.RawListing{
		rawMaterial("Enduit de lissage", "Sur demande", "comaf.tn"),
		rawMaterial("Peinture blanche 10L", "", "comaf.tn"),
	})

	if stats.ParseErrors != 1 {
		t.Errorf("parse errors: got %d, want 1 (empty price is not an error)", stats.ParseErrors)
	}
	for _, m := range materials {
		if m.Price != nil {
			t.Errorf("%s should have nil price", m.Name)
		}
	}
}

func TestCleanProperties(t *testing.T) {
	cleaner := NewCleaner(testLogger())

	raw := &models.RawListing{
		Kind:       models.KindProperty,
		Name:       "Villa S+3 avec jardin à Hammamet",
		PriceRaw:   "450 000 DT",
		Location:   "hammamet nord",
		Bedrooms:   "3 chambres",
		Bathrooms:  "2 sdb",
		AreaRaw:    "250 m²",
		SourceSite: "remax.com.tn",
		ScrapedAt:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	properties, stats := cleaner.CleanProperties([]*models.RawListing{raw})
	if stats.Kept != 1 {
		t.Fatalf("kept: got %d, want 1", stats.Kept)
	}
	p := properties[0]
	if p.Price == nil || *p.Price != 450000 {
		t.Errorf("price: got %v, want 450000", p.Price)
	}
	if p.Location != "Hammamet" {
		t.Errorf("location: got %q, want Hammamet", p.Location)
	}
	if p.Bedrooms != 3 || p.Bathrooms != 2 {
		t.Errorf("rooms: got %d/%d, want 3/2", p.Bedrooms, p.Bathrooms)
	}
	if p.Area == nil || *p.Area != 250 {
		t.Errorf("area: got %v, want 250", p.Area)
	}
	if p.PropertyType != "Villa" {
		t.Errorf("property type: got %q, want Villa", p.PropertyType)
	}
}

func TestPriceRangeBuckets(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, "0-50 TND"},
		{49.99, "0-50 TND"},
		{50, "50-200 TND"},
		{199, "50-200 TND"},
		{200, "200-500 TND"},
		{500, "500-1000 TND"},
		{999.99, "500-1000 TND"},
		{1000, "1000+ TND"},
		{25000, "1000+ TND"},
	}
	for _, tt := range tests {
		if got := PriceRange(tt.price); got != tt.want {
			t.Errorf("PriceRange(%v): got %q, want %q", tt.price, got, tt.want)
		}
	}
}

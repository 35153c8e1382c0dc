package services

import (
	"math"
	"strings"
	"testing"
	"time"

	"materiaux-scraper/models"
)

func devisCatalog() []*models.Material {
	cement := 25.5
	sand := 40.0
	paint := 80.0
	return []*models.Material{
		{Name: "Ciment Portland CEM II 50kg", Price: &cement, Unit: "sac", SourceSite: "brico-direct.tn"},
		{Name: "Sable de construction m³", Price: &sand, Unit: "m³", SourceSite: "comaf.tn"},
		{Name: "Peinture acrylique blanche 10L", Price: &paint, Unit: "l", SourceSite: "sabradecommerce.com"},
		{Name: "Enduit sur demande", Unit: "sac", SourceSite: "comaf.tn"}, // no price
	}
}

func TestDevisGenerate(t *testing.T) {
	g := NewDevisGenerator(devisCatalog(), testLogger())
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	req := &models.DevisRequest{
		Client:  models.Client{Name: "Entreprise Bâtiment Tunis"},
		Project: models.Project{Name: "Villa Hammamet", Location: "Hammamet"},
		Items: []models.DevisItem{
			{Material: "ciment", Quantity: 100},
			{Material: "sable", Quantity: 5},
			{Material: "marbre de carrare", Quantity: 2}, // not in catalog
		},
	}

	devis := g.Generate(req, DefaultDevisOptions(), now)

	if devis.Number != "DEV-20250310-0930" {
		t.Errorf("number: got %q, want DEV-20250310-0930", devis.Number)
	}
	if want := now.AddDate(0, 0, 30); !devis.ValidUntil.Equal(want) {
		t.Errorf("valid until: got %v, want %v", devis.ValidUntil, want)
	}
	if len(devis.Lines) != 2 {
		t.Fatalf("lines: got %d, want 2", len(devis.Lines))
	}
	if len(devis.Missing) != 1 || devis.Missing[0] != "marbre de carrare" {
		t.Errorf("missing: got %v, want [marbre de carrare]", devis.Missing)
	}

	// 100×25.5 + 5×40 = 2750 HT, TVA 19% = 522.5, TTC 3272.5
	if devis.SubTotalHT != 2750 {
		t.Errorf("sub-total HT: got %v, want 2750", devis.SubTotalHT)
	}
	if math.Abs(devis.VATAmount-522.5) > 1e-9 {
		t.Errorf("VAT: got %v, want 522.5", devis.VATAmount)
	}
	if math.Abs(devis.TotalTTC-3272.5) > 1e-9 {
		t.Errorf("total TTC: got %v, want 3272.5", devis.TotalTTC)
	}
}

func TestDevisDiscount(t *testing.T) {
	g := NewDevisGenerator(devisCatalog(), testLogger())
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	opts := DefaultDevisOptions()
	opts.DiscountPct = 10

	req := &models.DevisRequest{
		Client: models.Client{Name: "Client"},
		Items:  []models.DevisItem{{Material: "peinture", Quantity: 10}},
	}

	devis := g.Generate(req, opts, now)

	// 10×80 = 800, remise 10% = 80, net 720, TVA 136.8, TTC 856.8
	if devis.DiscountAmount != 80 {
		t.Errorf("discount: got %v, want 80", devis.DiscountAmount)
	}
	if devis.NetHT != 720 {
		t.Errorf("net HT: got %v, want 720", devis.NetHT)
	}
	if math.Abs(devis.TotalTTC-856.8) > 1e-9 {
		t.Errorf("total TTC: got %v, want 856.8", devis.TotalTTC)
	}
}

func TestDevisResolveSkipsUnpriced(t *testing.T) {
	g := NewDevisGenerator(devisCatalog(), testLogger())
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	req := &models.DevisRequest{
		Client: models.Client{Name: "Client"},
		Items:  []models.DevisItem{{Material: "enduit", Quantity: 3}},
	}

	devis := g.Generate(req, DefaultDevisOptions(), now)
	if len(devis.Lines) != 0 {
		t.Errorf("unpriced catalog entry must not produce a line, got %d", len(devis.Lines))
	}
	if len(devis.Missing) != 1 {
		t.Errorf("unpriced request should be reported missing, got %v", devis.Missing)
	}
}

func TestFormatTextContainsTotals(t *testing.T) {
	g := NewDevisGenerator(devisCatalog(), testLogger())
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	req := &models.DevisRequest{
		Client:  models.Client{Name: "Entreprise Bâtiment Tunis", Phone: "+216 71 000 000"},
		Project: models.Project{Name: "Villa Hammamet"},
		Items:   []models.DevisItem{{Material: "ciment", Quantity: 100}},
	}

	text := FormatText(g.Generate(req, DefaultDevisOptions(), now))

	for _, want := range []string{
		"DEVIS N° DEV-20250310-0930",
		"Entreprise Bâtiment Tunis",
		"Villa Hammamet",
		"TOTAL TTC",
		"TVA (19%)",
		"brico-direct.tn",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("formatted devis missing %q", want)
		}
	}
}

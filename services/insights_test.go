package services

import (
	"testing"

	"materiaux-scraper/models"
)

func TestGenerateInsights(t *testing.T) {
	s := NewInsightService(testLogger())

	cheap, mid, dear := 10.0, 120.0, 1500.0
	insights := s.Generate([]*models.Material{
		{Name: "Clous acier 5kg", Price: &cheap, Category: "Quincaillerie", SourceSite: "brico-direct.tn"},
		{Name: "Peinture blanche 10L", Price: &mid, Category: "Peinture et enduits", SourceSite: "brico-direct.tn"},
		{Name: "Chauffe-eau solaire", Price: &dear, Category: "Plomberie", SourceSite: "comaf.tn"},
		{Name: "Enduit sur demande", Category: "Autres matériaux", SourceSite: "comaf.tn"},
	})

	if insights.TotalMaterials != 4 || insights.WithPrice != 3 {
		t.Errorf("totals: got %d/%d, want 4/3", insights.TotalMaterials, insights.WithPrice)
	}
	if insights.MinPrice != 10 || insights.MaxPrice != 1500 {
		t.Errorf("min/max: got %v/%v, want 10/1500", insights.MinPrice, insights.MaxPrice)
	}
	if insights.MedianPrice != 120 {
		t.Errorf("median: got %v, want 120", insights.MedianPrice)
	}
	if insights.MostExpensive == nil || insights.MostExpensive.Name != "Chauffe-eau solaire" {
		t.Errorf("most expensive: got %+v", insights.MostExpensive)
	}
	if insights.BySite["brico-direct.tn"] != 2 || insights.BySite["comaf.tn"] != 2 {
		t.Errorf("by site: got %v", insights.BySite)
	}
	if insights.PriceRanges["0-50 TND"] != 1 || insights.PriceRanges["50-200 TND"] != 1 || insights.PriceRanges["1000+ TND"] != 1 {
		t.Errorf("price ranges: got %v", insights.PriceRanges)
	}

	plumbing := insights.ByCategory["Plomberie"]
	if plumbing.Count != 1 || plumbing.MeanPrice == nil || *plumbing.MeanPrice != 1500 {
		t.Errorf("plomberie stats: %+v", plumbing)
	}
	unpriced := insights.ByCategory["Autres matériaux"]
	if unpriced.Count != 1 || unpriced.MeanPrice != nil {
		t.Errorf("unpriced category should have nil mean, got %+v", unpriced)
	}
}

func TestGenerateInsightsEmpty(t *testing.T) {
	s := NewInsightService(testLogger())
	insights := s.Generate(nil)
	if insights.TotalMaterials != 0 || insights.MostExpensive != nil {
		t.Errorf("empty catalog should yield zero insights: %+v", insights)
	}
}

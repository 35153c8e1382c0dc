package scraper

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"materiaux-scraper/config"
	"materiaux-scraper/models"
)

func materialSite() *config.SiteConfig {
	return &config.SiteConfig{
		Name: "brico-direct.tn",
		Kind: "material",
		Selectors: config.Selectors{
			Listing:     []string{".product-container"},
			Name:        []string{"h5 a", ".product-name a"},
			Price:       []string{`span[itemprop="price"]`, ".price"},
			Description: []string{".product-desc"},
			Image:       []string{".left-block img"},
			DetailURL:   []string{"h5 a"},
		},
	}
}

func firstContainer(t *testing.T, html, selector string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	node := doc.Find(selector).First()
	if node.Length() == 0 {
		t.Fatalf("fixture has no %q", selector)
	}
	return node
}

func TestBuildListingMaterial(t *testing.T) {
	node := firstContainer(t, `
		<div class="product-container">
			<h5><a href="/ciment-42">Ciment Portland 42.5</a></h5>
			<span itemprop="price">25,500 DT</span>
			<div class="product-desc">Sac de 50kg</div>
			<div class="left-block"><img data-src="/img/c.jpg"></div>
		</div>`, ".product-container")

	now := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	raw, misses := buildListing(materialSite(), node, "https://brico-direct.tn/218-construction", 3, now)
	if raw == nil {
		t.Fatal("expected a listing")
	}
	if raw.Kind != models.KindMaterial {
		t.Errorf("kind: got %v", raw.Kind)
	}
	if raw.Name != "Ciment Portland 42.5" {
		t.Errorf("name: got %q", raw.Name)
	}
	if raw.PriceRaw != "25,500 DT" {
		t.Errorf("price raw: got %q", raw.PriceRaw)
	}
	if raw.URL != "https://brico-direct.tn/ciment-42" {
		t.Errorf("detail url not resolved: got %q", raw.URL)
	}
	if raw.ImageURL != "https://brico-direct.tn/img/c.jpg" {
		t.Errorf("image url: got %q", raw.ImageURL)
	}
	if raw.PageNumber != 3 || !raw.ScrapedAt.Equal(now) {
		t.Errorf("provenance: page=%d at=%v", raw.PageNumber, raw.ScrapedAt)
	}
	if misses != 0 {
		t.Errorf("misses: got %d, want 0", misses)
	}
}

func TestBuildListingMissingNameDropsRecord(t *testing.T) {
	node := firstContainer(t, `
		<div class="product-container">
			<span itemprop="price">10 DT</span>
		</div>`, ".product-container")

	raw, _ := buildListing(materialSite(), node, "https://brico-direct.tn/x", 1, time.Now())
	if raw != nil {
		t.Error("record without a name must be dropped")
	}
}

func TestBuildListingMissingFieldsDegradeRecord(t *testing.T) {
	node := firstContainer(t, `
		<div class="product-container">
			<h5><a>Produit sans prix</a></h5>
		</div>`, ".product-container")

	raw, misses := buildListing(materialSite(), node, "https://brico-direct.tn/x", 1, time.Now())
	if raw == nil {
		t.Fatal("missing price must not drop the record")
	}
	if raw.PriceRaw != "" {
		t.Errorf("price raw: got %q, want empty", raw.PriceRaw)
	}
	// price, description, image and detail href are all absent
	if misses != 4 {
		t.Errorf("misses: got %d, want 4", misses)
	}
}

func TestBuildListingProperty(t *testing.T) {
	site := &config.SiteConfig{
		Name: "menzili.tn",
		Kind: "property",
		Selectors: config.Selectors{
			Listing:   []string{".listing-item"},
			Name:      []string{".title"},
			Price:     []string{".price"},
			Location:  []string{".location"},
			Area:      []string{".surface"},
			Bedrooms:  []string{".rooms"},
			Bathrooms: []string{".baths"},
			Features:  []string{".features"},
			DetailURL: []string{"a"},
			Image:     []string{"img"},
		},
	}

	node := firstContainer(t, `
		<div class="listing-item">
			<a href="/immo/villa-9"><span class="title">Villa à Hammamet</span></a>
			<span class="price">450 000 DT</span>
			<span class="location">Hammamet Nord</span>
			<span class="surface">320 m²</span>
			<span class="rooms">4 chambres</span>
			<span class="baths">2 sdb</span>
			<span class="features">piscine, jardin</span>
			<img src="/img/v.jpg">
		</div>`, ".listing-item")

	raw, _ := buildListing(site, node, "https://www.menzili.tn/immo/vente", 1, time.Now())
	if raw == nil {
		t.Fatal("expected a listing")
	}
	if raw.Kind != models.KindProperty {
		t.Errorf("kind: got %v", raw.Kind)
	}
	if raw.Location != "Hammamet Nord" || raw.AreaRaw != "320 m²" {
		t.Errorf("location/area: %q / %q", raw.Location, raw.AreaRaw)
	}
	if raw.Bedrooms != "4 chambres" || raw.Bathrooms != "2 sdb" {
		t.Errorf("rooms: %q / %q", raw.Bedrooms, raw.Bathrooms)
	}
	if raw.URL != "https://www.menzili.tn/immo/villa-9" {
		t.Errorf("url: got %q", raw.URL)
	}
}

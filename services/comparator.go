package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"

	"materiaux-scraper/models"
	"materiaux-scraper/utils"
)

// similarityThreshold decides when two normalized product names belong to
// the same comparison group. Jaro-Winkler rewards shared prefixes, which
// suits product labels where the material name comes first.
const similarityThreshold = 0.85

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// French stop words stripped before comparing product names.
var stopWords = map[string]struct{}{
	"de": {}, "du": {}, "la": {}, "le": {}, "les": {},
	"des": {}, "pour": {}, "avec": {}, "sans": {},
}

// Comparator groups similar materials across suppliers and computes the
// possible savings per group.
type Comparator struct {
	logger *utils.Logger
}

// NewComparator creates a Comparator with the given logger.
func NewComparator(logger *utils.Logger) *Comparator {
	return &Comparator{logger: logger}
}

// NormalizeName lowers a product name, strips punctuation, and drops stop
// words and tokens of fewer than 3 runes.
func NormalizeName(name string) string {
	lowered := strings.ToLower(name)
	lowered = nonWord.ReplaceAllString(lowered, " ")

	var kept []string
	for _, w := range strings.Fields(lowered) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if len([]rune(w)) <= 2 {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// Compare groups priced materials whose normalized names are similar and
// returns one PriceComparison per multi-supplier group, sorted by savings
// descending. Materials without a price never enter a group.
type compEntry struct {
	material   *models.Material
	normalized string
}

func (c *Comparator) Compare(materials []*models.Material) []*models.PriceComparison {
	var entries []compEntry
	for _, m := range materials {
		if m.Price == nil {
			continue
		}
		norm := NormalizeName(m.Name)
		if norm == "" {
			continue
		}
		entries = append(entries, compEntry{material: m, normalized: norm})
	}

	grouped := make([]bool, len(entries))
	var comparisons []*models.PriceComparison

	for i := range entries {
		if grouped[i] {
			continue
		}
		group := []compEntry{entries[i]}
		grouped[i] = true

		for j := i + 1; j < len(entries); j++ {
			if grouped[j] {
				continue
			}
			score := matchr.JaroWinkler(entries[i].normalized, entries[j].normalized, false)
			if score >= similarityThreshold {
				group = append(group, entries[j])
				grouped[j] = true
			}
		}

		if len(group) < 2 {
			continue
		}
		comparisons = append(comparisons, buildComparison(group[0].material.Name, group))
	}

	sort.Slice(comparisons, func(i, j int) bool {
		return comparisons[i].Savings > comparisons[j].Savings
	})

	c.logger.Info("[compare] %d comparison groups across %d priced materials",
		len(comparisons), len(entries))
	return comparisons
}

func buildComparison(product string, group []compEntry) *models.PriceComparison {
	comp := &models.PriceComparison{
		Product:   product,
		Suppliers: len(group),
	}

	var total float64
	for i, e := range group {
		price := *e.material.Price
		offer := models.Offer{Name: e.material.Name, Site: e.material.SourceSite, Price: price}
		comp.Offers = append(comp.Offers, offer)
		total += price

		if i == 0 || price < comp.MinPrice {
			comp.MinPrice = price
			comp.BestSupplier = e.material.SourceSite
		}
		if i == 0 || price > comp.MaxPrice {
			comp.MaxPrice = price
			comp.WorstSupplier = e.material.SourceSite
		}
	}
	comp.MeanPrice = total / float64(len(group))

	comp.Savings = comp.MaxPrice - comp.MinPrice
	if comp.MaxPrice > 0 {
		comp.SavingsPct = comp.Savings / comp.MaxPrice * 100
	}

	sort.Slice(comp.Offers, func(i, j int) bool {
		return comp.Offers[i].Price < comp.Offers[j].Price
	})
	return comp
}

// SavingsReport renders the comparison list as a human-readable text
// report, best savings first.
func (c *Comparator) SavingsReport(comparisons []*models.PriceComparison) string {
	var b strings.Builder

	b.WriteString("RAPPORT D'ÉCONOMIES — MATÉRIAUX DE CONSTRUCTION\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	b.WriteString(fmt.Sprintf("Produits comparés : %d\n", len(comparisons)))

	var totalSavings, totalPct float64
	for _, comp := range comparisons {
		totalSavings += comp.Savings
		totalPct += comp.SavingsPct
	}
	b.WriteString(fmt.Sprintf("Économies totales possibles : %.2f TND\n", totalSavings))
	if len(comparisons) > 0 {
		b.WriteString(fmt.Sprintf("Économie moyenne : %.1f%%\n", totalPct/float64(len(comparisons))))
	}
	b.WriteString("\n")

	top := comparisons
	if len(top) > 10 {
		top = top[:10]
	}
	b.WriteString("TOP ÉCONOMIES POSSIBLES\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	for i, comp := range top {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, truncate(comp.Product, 60)))
		b.WriteString(fmt.Sprintf("   Économie : %.2f TND (%.1f%%)\n", comp.Savings, comp.SavingsPct))
		b.WriteString(fmt.Sprintf("   Meilleur : %s — %.2f TND\n", comp.BestSupplier, comp.MinPrice))
		b.WriteString(fmt.Sprintf("   Plus cher : %s — %.2f TND\n", comp.WorstSupplier, comp.MaxPrice))
		b.WriteString(fmt.Sprintf("   %d fournisseurs comparés\n\n", comp.Suppliers))
	}

	// Count how often each supplier has the best price.
	bestCounts := make(map[string]int)
	for _, comp := range comparisons {
		bestCounts[comp.BestSupplier]++
	}
	type supplierCount struct {
		site  string
		count int
	}
	var suppliers []supplierCount
	for site, count := range bestCounts {
		suppliers = append(suppliers, supplierCount{site, count})
	}
	sort.Slice(suppliers, func(i, j int) bool {
		if suppliers[i].count != suppliers[j].count {
			return suppliers[i].count > suppliers[j].count
		}
		return suppliers[i].site < suppliers[j].site
	})

	b.WriteString("ANALYSE PAR FOURNISSEUR\n")
	b.WriteString(strings.Repeat("-", 25) + "\n")
	for _, s := range suppliers {
		b.WriteString(fmt.Sprintf("• %s : meilleur prix sur %d produits\n", s.site, s.count))
	}

	return b.String()
}

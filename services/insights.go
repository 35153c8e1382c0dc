package services

import (
	"fmt"
	"sort"
	"strings"

	"materiaux-scraper/models"
	"materiaux-scraper/utils"
)

// InsightService computes aggregate statistics over a cleaned catalog.
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates an InsightService with the given logger.
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate builds the statistics report for a material catalog.
func (s *InsightService) Generate(materials []*models.Material) *models.MaterialInsights {
	insights := &models.MaterialInsights{
		ByCategory:  make(map[string]models.CategoryStats),
		BySite:      make(map[string]int),
		PriceRanges: make(map[string]int),
	}
	if len(materials) == 0 {
		return insights
	}

	insights.TotalMaterials = len(materials)

	categoryPrices := make(map[string][]float64)
	var allPrices []float64
	var total float64
	first := true

	for _, m := range materials {
		insights.BySite[m.SourceSite]++
		stats := insights.ByCategory[m.Category]
		stats.Count++

		if m.Price != nil {
			price := *m.Price
			insights.WithPrice++
			total += price
			stats.WithPrice++
			categoryPrices[m.Category] = append(categoryPrices[m.Category], price)
			allPrices = append(allPrices, price)
			insights.PriceRanges[PriceRange(price)]++

			if first || price < insights.MinPrice {
				insights.MinPrice = price
			}
			if first || price > insights.MaxPrice {
				insights.MaxPrice = price
				insights.MostExpensive = m
			}
			first = false
		}
		insights.ByCategory[m.Category] = stats
	}

	if insights.WithPrice > 0 {
		insights.MeanPrice = round2(total / float64(insights.WithPrice))
		insights.MedianPrice = round2(median(allPrices))
		insights.MinPrice = round2(insights.MinPrice)
		insights.MaxPrice = round2(insights.MaxPrice)
	}

	for category, prices := range categoryPrices {
		stats := insights.ByCategory[category]
		min, max, sum := prices[0], prices[0], 0.0
		for _, p := range prices {
			sum += p
			if p < min {
				min = p
			}
			if p > max {
				max = p
			}
		}
		mean := round2(sum / float64(len(prices)))
		med := round2(median(prices))
		min, max = round2(min), round2(max)
		stats.MinPrice = &min
		stats.MeanPrice = &mean
		stats.MedianPrice = &med
		stats.MaxPrice = &max
		insights.ByCategory[category] = stats
	}

	return insights
}

// Print renders the insights as an ANSI terminal report.
func (s *InsightService) Print(r *models.MaterialInsights) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 MATÉRIAUX DE CONSTRUCTION — STATISTIQUES\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Vue d'ensemble\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Matériaux catalogués : \033[1m%d\033[0m\n", r.TotalMaterials)
	fmt.Printf("  Avec prix            : \033[1m%d\033[0m\n", r.WithPrice)
	fmt.Println()

	fmt.Printf("\033[1;33m  Prix (TND)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.WithPrice > 0 {
		fmt.Printf("  Prix moyen   : \033[1;32m%.2f TND\033[0m\n", r.MeanPrice)
		fmt.Printf("  Prix médian  : \033[1;32m%.2f TND\033[0m\n", r.MedianPrice)
		fmt.Printf("  Prix minimum : \033[1;32m%.2f TND\033[0m\n", r.MinPrice)
		fmt.Printf("  Prix maximum : \033[1;32m%.2f TND\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  Aucun prix disponible\n")
	}
	fmt.Println()

	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Matériau le plus cher\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.MostExpensive.Name, 50))
		fmt.Printf("  Catégorie : %s\n", r.MostExpensive.Category)
		fmt.Printf("  Prix      : \033[1;31m%.2f TND\033[0m\n", *r.MostExpensive.Price)
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Par catégorie\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, name := range sortedCategories(r.ByCategory) {
		stats := r.ByCategory[name]
		if stats.MeanPrice != nil {
			fmt.Printf("  %-32s %4d articles, moyenne \033[1;32m%.2f TND\033[0m\n",
				truncate(name, 30), stats.Count, *stats.MeanPrice)
		} else {
			fmt.Printf("  %-32s %4d articles, aucun prix\n", truncate(name, 30), stats.Count)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Par site\033[0m\n")
	fmt.Printf("  %s\n", thin)
	type siteCount struct {
		site  string
		count int
	}
	var sites []siteCount
	for site, count := range r.BySite {
		sites = append(sites, siteCount{site, count})
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].count > sites[j].count })
	for _, sc := range sites {
		bar := strings.Repeat("█", barWidth(sc.count, r.TotalMaterials))
		fmt.Printf("  %-28s %s (%d)\n", truncate(sc.site, 26), bar, sc.count)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// sortedCategories orders categories by article count descending, then name.
func sortedCategories(byCategory map[string]models.CategoryStats) []string {
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := byCategory[names[i]].Count, byCategory[names[j]].Count
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	return names
}

func barWidth(count, total int) int {
	if total == 0 {
		return 0
	}
	w := count * 40 / total
	if w == 0 {
		w = 1
	}
	return w
}

// median sorts a copy; the midpoint of an even-length slice is the mean
// of the two middle values.
func median(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

package extract

import (
	"regexp"
	"strings"
)

// DefaultUnit is returned when no unit keyword matches.
const DefaultUnit = "pièce"

type unitPattern struct {
	re   *regexp.Regexp
	unit string
}

// unitPatterns is the ordered unit table. The first matching pattern wins,
// so the priority is exactly the order below: surface and volume first,
// then length, weight, liquid volume, then packaging units. This makes
// "Sac de ciment 50kg" resolve to "kg" (weight outranks packaging), and
// the order is part of the package contract.
//
// RE2 has no word boundary between a digit and a letter, so units glued to
// a quantity ("50kg", "85m2", "100ml") also accept a leading digit.
var unitPatterns = []unitPattern{
	{regexp.MustCompile(`(?i)(?:\b|\d)(?:m2|m²|mètres?\s*carrés?|metres?\s*carres?)`), "m²"},
	{regexp.MustCompile(`(?i)(?:\b|\d)(?:m3|m³|mètres?\s*cubes?|metres?\s*cubes?)`), "m³"},
	{regexp.MustCompile(`(?i)(?:\b|\d)(?:ml|mètres?\s*linéaires?|metres?\s*lineaires?)\b`), "ml"},
	{regexp.MustCompile(`(?i)(?:\b|\d)(?:kg|kilogrammes?)\b`), "kg"},
	{regexp.MustCompile(`(?i)\btonnes?\b`), "t"},
	{regexp.MustCompile(`(?i)\blitres?\b`), "l"},
	{regexp.MustCompile(`(?i)\bsacs?\b`), "sac"},
	{regexp.MustCompile(`(?i)\b(?:pièces?|pieces?|unités?|unites?|pcs|pc\b)`), "pièce"},
	{regexp.MustCompile(`(?i)\bpalettes?\b`), "palette"},
	{regexp.MustCompile(`(?i)\b(?:boîtes?|boites?|box)\b`), "boîte"},
	{regexp.MustCompile(`(?i)\brouleaux?\b`), "rouleau"},
	{regexp.MustCompile(`(?i)\btubes?\b`), "tube"},
}

// InferUnit derives the sale unit from the combined name, description and
// price text of a listing. When nothing matches it returns DefaultUnit.
func InferUnit(text string) string {
	lower := strings.ToLower(text)
	for _, p := range unitPatterns {
		if p.re.MatchString(lower) {
			return p.unit
		}
	}
	return DefaultUnit
}

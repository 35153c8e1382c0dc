package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	areaNumber    = regexp.MustCompile(`(\d[\d \x{00a0}.,]*)\s*(?:m²|m2)?`)
	countNumber   = regexp.MustCompile(`\d+`)
	bedroomsHint  = regexp.MustCompile(`(\d+)\s*(?:chambres?|pièces?|pieces?|rooms?|bedrooms?)`)
	bathroomsHint = regexp.MustCompile(`(\d+)\s*(?:sdb|salles?\s*de\s*bains?|bathrooms?)`)
)

// ParseArea reads a surface in square meters from raw area text
// ("120 m²", "Surf habitable 85m2", "250").
func ParseArea(raw string) (float64, bool) {
	m := areaNumber.FindStringSubmatch(strings.ToLower(raw))
	if m == nil {
		return 0, false
	}
	return ParsePrice(m[1])
}

// ParseCount reads a small integer count (bedrooms, bathrooms) from raw
// text. A unit hint ("3 chambres", "2 sdb") is preferred; otherwise the
// first bare integer is taken.
func ParseCount(raw string) (int, bool) {
	lower := strings.ToLower(raw)
	for _, re := range []*regexp.Regexp{bedroomsHint, bathroomsHint} {
		if m := re.FindStringSubmatch(lower); m != nil {
			n, err := strconv.Atoi(m[1])
			return n, err == nil
		}
	}
	if m := countNumber.FindString(lower); m != "" {
		n, err := strconv.Atoi(m)
		return n, err == nil
	}
	return 0, false
}

// locationAliases maps common spelling variants to canonical Tunisian
// governorate or city names. Matching is substring-based on the lowered
// input, in the order below.
var locationAliases = []struct {
	needle string
	name   string
}{
	{"grand tunis", "Tunis"},
	{"tunis", "Tunis"},
	{"ariana", "Ariana"},
	{"ben arous", "Ben Arous"},
	{"manouba", "Manouba"},
	{"nabeul", "Nabeul"},
	{"hammamet", "Hammamet"},
	{"bizerte", "Bizerte"},
	{"sousse", "Sousse"},
	{"monastir", "Monastir"},
	{"mahdia", "Mahdia"},
	{"kairouan", "Kairouan"},
	{"sfax", "Sfax"},
	{"gabes", "Gabès"},
	{"gabès", "Gabès"},
	{"djerba", "Djerba"},
	{"medenine", "Médenine"},
	{"médenine", "Médenine"},
}

// NormalizeLocation maps raw location text to a canonical city name, or
// returns the title-cased input when no alias matches.
func NormalizeLocation(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return ""
	}
	for _, alias := range locationAliases {
		if strings.Contains(lower, alias.needle) {
			return alias.name
		}
	}
	return titleCase(lower)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

// propertyTypes is the ordered keyword table for property-type detection;
// first match wins.
var propertyTypes = []struct {
	needle string
	label  string
}{
	{"appartement", "Appartement"},
	{"villa", "Villa"},
	{"maison", "Maison"},
	{"studio", "Studio"},
	{"duplex", "Duplex"},
	{"bureau", "Bureau"},
	{"local", "Local Commercial"},
	{"terrain", "Terrain"},
	{"ferme", "Ferme"},
}

// DefaultPropertyType is assigned when no keyword matches.
const DefaultPropertyType = "Autre"

// DetectPropertyType infers the property type from the listing title and
// description.
func DetectPropertyType(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, pt := range propertyTypes {
		if strings.Contains(text, pt.needle) {
			return pt.label
		}
	}
	return DefaultPropertyType
}

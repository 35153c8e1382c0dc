package extract

import "strings"

// DefaultCategory is assigned when no keyword matches.
const DefaultCategory = "Autres matériaux"

// Category pairs a category label with its keyword list.
type Category struct {
	Name     string
	Keywords []string
}

// Categories is the ordered category table. Classification is first match
// wins, scanning categories top to bottom and keywords left to right, so a
// name matching keywords from two categories gets the one listed first.
// The order is part of the package contract; tests pin the tie-break.
var Categories = []Category{
	{"Ciment et béton", []string{
		"ciment", "béton", "beton", "mortier", "chaux", "clinker",
		"portland", "hydraulique", "sable", "gravier", "agregat",
	}},
	{"Carrelage et revêtements", []string{
		"carrelage", "carreau", "faience", "faïence", "revetement",
		"revêtement", "ceramique", "céramique", "marbre",
	}},
	{"Peinture et enduits", []string{
		"peinture", "enduit", "vernis", "laque", "primer", "sous-couche",
		"acrylique", "glycero", "anti-rouille", "pinceau",
	}},
	{"Isolation thermique", []string{
		"isolation", "isolant", "laine", "polystyrene", "polystyrène",
		"polyurethane", "polyuréthane", "thermique", "acoustique",
	}},
	{"Plomberie", []string{
		"tuyau", "robinet", "pvc", "raccord", "plomberie", "sanitaire",
		"canalisation", "siphon", "joint",
	}},
	{"Électricité", []string{
		"cable", "câble", "fil électrique", "electrique", "électrique", "prise",
		"interrupteur", "disjoncteur", "gaine",
	}},
	{"Menuiserie et bois", []string{
		"bois", "porte", "fenetre", "fenêtre", "menuiserie", "planche",
		"contreplaque", "contreplaqué", "agglomere", "aggloméré",
	}},
	{"Fer et métallurgie", []string{
		"fer", "acier", "rond à béton", "ferraillage", "treillis", "poutrelle",
		"corniere", "cornière", "tole", "tôle", "galvanise",
	}},
	{"Toiture et étanchéité", []string{
		"tuile", "toiture", "zinc", "gouttiere", "gouttière", "etancheite",
		"étanchéité", "membrane", "bardeau", "couverture",
	}},
	{"Outillage", []string{
		"outil", "marteau", "perceuse", "scie", "tournevis", "clé",
		"niveau", "équerre", "pelle", "brouette",
	}},
	{"Quincaillerie", []string{
		"vis", "clou", "boulon", "ecrou", "écrou", "rondelle",
		"cheville", "serrure", "poignee", "poignée", "penture",
	}},
}

// Categorize assigns a material category by keyword-matching the name and
// description against the fixed Categories table. First match wins; when
// nothing matches it returns DefaultCategory.
func Categorize(name, description string) string {
	text := strings.ToLower(name + " " + description)
	for _, cat := range Categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				return cat.Name
			}
		}
	}
	return DefaultCategory
}

package extract

import "testing"

func TestInferUnit(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Carrelage 30x30 m²", "m²"},
		{"Béton prêt à l'emploi 1 m3", "m³"},
		// weight outranks packaging in the priority order
		{"Sac de ciment 50kg", "kg"},
		{"Sac de plâtre", "sac"},
		{"Peinture acrylique 5 litres", "l"},
		{"Tube PVC diamètre 100", "tube"},
		{"Poignée de porte, 1 pièce", "pièce"},
		{"Câble électrique 10 ml", "ml"},
		// units glued to the quantity, no space before the keyword
		{"Sac de ciment Portland 50kg 25,50 DT", "kg"},
		{"Terrain constructible 85m2 à Sousse", "m²"},
		{"Citerne enterrée 10m3", "m³"},
		{"Gaine ICTA 100ml", "ml"},
		{"produit générique", DefaultUnit},
		{"", DefaultUnit},
	}

	for _, tt := range tests {
		if got := InferUnit(tt.text); got != tt.want {
			t.Errorf("InferUnit(%q) = %q; want %q", tt.text, got, tt.want)
		}
	}
}

// The unit table order is a documented contract: earlier patterns shadow
// later ones when several keywords are present.
func TestInferUnitPriorityStable(t *testing.T) {
	if got := InferUnit("palette de sacs de mortier 25 kg"); got != "kg" {
		t.Errorf("priority: got %q, want kg before sac and palette", got)
	}
	if got := InferUnit("rouleau d'étanchéité 10 m²"); got != "m²" {
		t.Errorf("priority: got %q, want m² before rouleau", got)
	}
}

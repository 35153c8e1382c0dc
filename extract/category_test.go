package extract

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{"Ciment Portland CEM II 42.5", "", "Ciment et béton"},
		{"Carreau grès cérame 60x60", "pour sol intérieur", "Carrelage et revêtements"},
		{"Peinture vinylique blanche 25kg", "", "Peinture et enduits"},
		{"Tuyau PVC évacuation", "", "Plomberie"},
		{"Câble souple 3G2.5", "", "Électricité"},
		{"Porte isoplane", "", "Menuiserie et bois"},
		{"Rond à béton HA8", "", "Ciment et béton"},
		{"Marteau de maçon", "", "Outillage"},
		{"Vis à bois 4x40", "", "Menuiserie et bois"},
		{"Produit mystère", "sans mots-clés", DefaultCategory},
		{"", "", DefaultCategory},
	}

	for _, tt := range tests {
		if got := Categorize(tt.name, tt.desc); got != tt.want {
			t.Errorf("Categorize(%q, %q) = %q; want %q", tt.name, tt.desc, got, tt.want)
		}
	}
}

// When keywords from two categories both appear, the category listed first
// in the table wins. "peinture pour carrelage" holds a Carrelage keyword
// and a Peinture keyword; Carrelage comes first.
func TestCategorizeTieBreakByTableOrder(t *testing.T) {
	got := Categorize("Peinture spéciale pour carrelage", "")
	if got != "Carrelage et revêtements" {
		t.Errorf("tie-break: got %q, want %q", got, "Carrelage et revêtements")
	}
}

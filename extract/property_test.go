package extract

import "testing"

func TestParseArea(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"120 m²", 120, true},
		{"Surf habitable 85m2", 85, true},
		{"250", 250, true},
		{"1 200 m²", 1200, true},
		{"surface inconnue", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseArea(tt.raw)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseArea(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"3 chambres", 3, true},
		{"2 sdb", 2, true},
		{"4", 4, true},
		{"chambres : 5", 5, true},
		{"aucune", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCount(tt.raw)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseCount(%q) = %d, %v; want %d, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct{ raw, want string }{
		{"grand tunis", "Tunis"},
		{"La Marsa, Tunis", "Tunis"},
		{"SOUSSE", "Sousse"},
		{"djerba midoun", "Djerba"},
		{"zarzis", "Zarzis"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeLocation(tt.raw); got != tt.want {
			t.Errorf("NormalizeLocation(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestDetectPropertyType(t *testing.T) {
	tests := []struct {
		title, desc, want string
	}{
		{"Villa avec piscine à Hammamet", "", "Villa"},
		{"Appartement S+2 centre ville", "", "Appartement"},
		{"Terrain constructible 500m²", "", "Terrain"},
		{"À vendre", "studio meublé proche plage", "Studio"},
		{"Bien immobilier", "", DefaultPropertyType},
	}
	for _, tt := range tests {
		if got := DetectPropertyType(tt.title, tt.desc); got != tt.want {
			t.Errorf("DetectPropertyType(%q, %q) = %q; want %q", tt.title, tt.desc, got, tt.want)
		}
	}
}

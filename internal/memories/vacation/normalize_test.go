package vacation

import "testing"

func TestNormalizeLocality(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Český Krumlov", "cesky krumlov"},
		{"Cesky Krumlov", "cesky krumlov"},
		{"Provence-Alpes-Côte d'Azur", "provence alpes cote d'azur"},
		{"  Lisboa ", "lisboa"},
		{"CZ", "cz"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeLocality(tt.in); got != tt.want {
			t.Errorf("normalizeLocality(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

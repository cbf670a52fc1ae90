package segmenter

import "testing"

func TestIsSemanticBreak(t *testing.T) {
	t.Parallel()

	lexicon := DefaultLexicon()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"marker prefix", "sin embargo, todo cambió", true},
		{"marker prefix uppercase", "Sin embargo, todo cambió", true},
		{"temporal marker", "después de la guerra volvió a Ávila", true},
		{"biographical opener", "su obra más conocida es el castillo interior", true},
		{"marker inside window", "y sin embargo nadie la escuchó", true},
		{"marker outside 30-rune window", "la monja que había pasado toda una década sin embargo", false},
		{"no marker", "la ciudad amurallada de Ávila", false},
		{"empty text", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lexicon.IsSemanticBreak("es", tt.text); got != tt.want {
				t.Fatalf("IsSemanticBreak(%q)=%v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMarkers_LocaleFallback(t *testing.T) {
	t.Parallel()

	lexicon := DefaultLexicon()
	if got := lexicon.Markers("fr"); len(got) == 0 {
		t.Fatal("unknown locale should fall back to the default lexicon")
	}
}

func TestIsGoodCutPoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"sentence end", "Nació en 1515.", true},
		{"question", "¿Quién era?", true},
		{"comma pause", "en aquel tiempo,", true},
		{"trailing connective", "caminó durante días y", true},
		{"trailing contrastive", "lo intentó pero", true},
		{"mid phrase", "la ciudad de", false},
		{"connective as substring only", "el rey", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGoodCutPoint(tt.text); got != tt.want {
				t.Fatalf("IsGoodCutPoint(%q)=%v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

package segmenter

import "strings"

// markerWindow is how many runes at the head of the next segment are scanned
// for an embedded discourse marker. Group boundaries feed every downstream
// timestamp, so this window must stay fixed for reproducibility.
const markerWindow = 30

// MarkerLexicon maps a locale to the discourse markers that open a new
// narrative unit. The lists are deliberately small, hand-curated lexicons, not
// an NLP model; swap or extend per deployment language.
type MarkerLexicon map[string][]string

// DefaultLexicon covers the Spanish narration the pipeline was built for:
// temporal transitions, contrastive transitions, section openers and
// biographical-section openers.
func DefaultLexicon() MarkerLexicon {
	return MarkerLexicon{
		"es": {
			"después", "luego", "más tarde", "posteriormente",
			"por otro lado", "mientras tanto", "sin embargo",
			"ahora", "entonces", "así", "de esta manera",
			"su vida", "su obra", "sus escritos", "su legado",
		},
	}
}

// Markers returns the marker list for a locale, falling back to the default
// locale when the requested one has no entry.
func (l MarkerLexicon) Markers(locale string) []string {
	if m, ok := l[locale]; ok {
		return m
	}
	return l[DefaultLocale]
}

// IsSemanticBreak reports whether nextText opens a new narrative unit relative
// to the current one: it begins with a discourse marker, or carries one inside
// its first markerWindow runes.
func (l MarkerLexicon) IsSemanticBreak(locale, nextText string) bool {
	next := strings.ToLower(strings.TrimSpace(nextText))
	if next == "" {
		return false
	}
	head := runeHead(next, markerWindow)
	for _, marker := range l.Markers(locale) {
		if strings.HasPrefix(next, marker) || strings.Contains(head, " "+marker) {
			return true
		}
	}
	return false
}

// cutPunctuation and cutConnectives mark text endings where a visual cut reads
// naturally: sentence-final or pause punctuation, or a trailing connective.
var cutPunctuation = []string{".", "!", "?", ",", ";", ":"}

var cutConnectives = []string{
	"y", "pero", "sin embargo", "además", "también",
	"mientras", "cuando", "donde", "como",
}

// IsGoodCutPoint reports whether text ends somewhere a chunk boundary reads
// naturally. It only informs diagnostics; count-based chunking is never
// overridden by it.
func IsGoodCutPoint(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return false
	}
	for _, p := range cutPunctuation {
		if strings.HasSuffix(t, p) {
			return true
		}
	}
	for _, w := range cutConnectives {
		if t == w || strings.HasSuffix(t, " "+w) {
			return true
		}
	}
	return false
}

func runeHead(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

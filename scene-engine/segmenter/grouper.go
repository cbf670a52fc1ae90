package segmenter

import (
	"fmt"
	"strings"
)

// ValidateSegments fails fast on malformed input. The grouper itself assumes
// segments are ordered with non-negative spans; feeding it anything else would
// produce nonsensical timings, so callers validate once up front. Degenerate
// but well-formed input (empty list, zero-duration segments, empty text) passes.
func ValidateSegments(segments []TranscriptSegment) error {
	for i, seg := range segments {
		if seg.Duration() < 0 {
			return fmt.Errorf("segment %d has end %.3f before start %.3f", i, seg.End, seg.Start)
		}
		if i > 0 && seg.Start < segments[i-1].Start {
			return fmt.Errorf("segment %d starts before segment %d", i, i-1)
		}
	}
	return nil
}

// GroupSegments merges adjacent transcript segments into semantic groups in a
// single forward pass. After each segment is appended to the open group the
// closure predicate runs in priority order: last segment, long pause to the
// next segment, discourse-marker break in the next segment.
//
// Empty input yields empty output. The function is pure: same segments, same
// groups, every time.
func GroupSegments(segments []TranscriptSegment, cfg Config) ([]SemanticGroup, []Diagnostic) {
	if len(segments) == 0 {
		return nil, nil
	}

	lexicon := cfg.Lexicon
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	var groups []SemanticGroup
	var diags []Diagnostic

	var members []TranscriptSegment
	groupStart := segments[0].Start

	for i, seg := range segments {
		members = append(members, seg)

		var reason CloseReason
		switch {
		case i == len(segments)-1:
			reason = CloseLastSegment
		default:
			next := segments[i+1]
			if gap := next.Start - seg.End; gap > cfg.PauseThreshold {
				reason = CloseLongPause
			} else if lexicon.IsSemanticBreak(cfg.Locale, next.Text) {
				reason = CloseSemanticBreak
			}
		}
		if reason == "" {
			continue
		}

		group := SemanticGroup{
			Text:        joinSegmentTexts(members),
			Start:       groupStart,
			End:         seg.End,
			Duration:    seg.End - groupStart,
			Members:     members,
			CloseReason: reason,
		}
		groups = append(groups, group)
		diags = append(diags, Diagnostic{
			Level:   LevelDebug,
			Message: fmt.Sprintf("group %d closed: %.1fs (%s)", len(groups)-1, group.Duration, reason),
		})

		members = nil
		if i < len(segments)-1 {
			groupStart = segments[i+1].Start
		}
	}

	return groups, diags
}

func joinSegmentTexts(segments []TranscriptSegment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, strings.TrimSpace(seg.Text))
	}
	return strings.Join(parts, " ")
}

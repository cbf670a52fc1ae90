// Package transcript loads time-stamped transcription documents produced by
// the transcriber service (or any whisper-compatible tool) into the segment
// slice the scene pipeline consumes.
package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"slideshow_automation/scene-engine/segmenter"
)

// Document is the transcription.json shape: a segments array, optionally
// wrapped with metadata about the source audio.
type Document struct {
	Metadata map[string]interface{}        `json:"metadata,omitempty"`
	Segments []segmenter.TranscriptSegment `json:"segments"`
}

// Load reads a transcription JSON file.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("opening transcription file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a transcription document from r. Both the bare
// {"segments":[...]} form and the metadata-wrapped form decode the same way.
func Parse(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decoding transcription JSON: %w", err)
	}
	return doc, nil
}

// srtTimeRegex matches one SRT cue timing line: 00:01:02,345 --> 00:01:05,000
var srtTimeRegex = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`)

// ParseSRT converts SRT subtitle content into transcript segments. Cue index
// lines are ignored; multi-line cue text is joined with single spaces. Cues
// with empty text are kept (the pipeline tolerates empty text) but cues with
// no timing line are skipped.
func ParseSRT(content string) []segmenter.TranscriptSegment {
	var segments []segmenter.TranscriptSegment

	blocks := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")

		timingLine := -1
		var m []string
		for i, line := range lines {
			if m = srtTimeRegex.FindStringSubmatch(line); m != nil {
				timingLine = i
				break
			}
		}
		if timingLine < 0 {
			continue
		}

		start := srtClockToSeconds(m[1], m[2], m[3], m[4])
		end := srtClockToSeconds(m[5], m[6], m[7], m[8])

		var textParts []string
		for _, line := range lines[timingLine+1:] {
			if t := strings.TrimSpace(line); t != "" {
				textParts = append(textParts, t)
			}
		}

		segments = append(segments, segmenter.TranscriptSegment{
			Start: start,
			End:   end,
			Text:  strings.Join(textParts, " "),
		})
	}

	return segments
}

func srtClockToSeconds(h, m, s, ms string) float64 {
	hours, _ := strconv.Atoi(h)
	mins, _ := strconv.Atoi(m)
	secs, _ := strconv.Atoi(s)
	millis, _ := strconv.Atoi(ms)
	return float64(hours*3600+mins*60+secs) + float64(millis)/1000.0
}

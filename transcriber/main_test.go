package main

import (
	"math"
	"testing"
)

func TestParseWhisperTimestamps(t *testing.T) {
	output := `whisper_init_from_file_with_params_no_state: loading model
[00:00:00.000 --> 00:00:03.500]  Hola a todos
[00:00:03.500 --> 00:00:07.250]  hoy hablaremos de historia

[00:01:02.000 --> 00:01:05.000]
processing audio...`

	segments := parseWhisperTimestamps(output)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	if segments[0].Text != "Hola a todos" {
		t.Errorf("unexpected text: %q", segments[0].Text)
	}
	if math.Abs(segments[0].Start-0) > 1e-9 || math.Abs(segments[0].End-3.5) > 1e-9 {
		t.Errorf("unexpected timing: %.3f-%.3f", segments[0].Start, segments[0].End)
	}
	if math.Abs(segments[1].Start-3.5) > 1e-9 || math.Abs(segments[1].End-7.25) > 1e-9 {
		t.Errorf("unexpected timing: %.3f-%.3f", segments[1].Start, segments[1].End)
	}
}

func TestClockToSeconds(t *testing.T) {
	got := clockToSeconds("01", "02", "03", "450")
	want := 3723.45
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("clockToSeconds = %v, want %v", got, want)
	}
}

func TestIsValidAudioFile(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"narration.mp3", true},
		{"clip.WAV", true},
		{"video.mp4", true},
		{"notes.txt", false},
		{"noext", false},
	}
	for _, tc := range cases {
		if got := isValidAudioFile(tc.name); got != tc.valid {
			t.Errorf("isValidAudioFile(%q) = %v, want %v", tc.name, got, tc.valid)
		}
	}
}

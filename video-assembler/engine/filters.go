package engine

import (
	"fmt"
	"strings"

	"slideshow_automation/scene-engine/segmenter"
)

// BuildFilterComplex builds the full -filter_complex graph for a render.
// Image inputs occupy ffmpeg input slots 0..len(Scenes)-1, narration clips
// follow, and the optional music track comes last. The final video stream is
// labeled [v] and the final audio stream [a].
func BuildFilterComplex(req *RenderRequest) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	var filters []string

	// Per-scene clip: scale (or Ken Burns), normalize framerate, apply the
	// fades the scene engine assigned.
	for i, scene := range req.Scenes {
		var chain []string

		if req.KenBurns.Enabled {
			durationFrames := int(scene.Duration * float64(req.FPS))
			chain = append(chain, fmt.Sprintf("scale=%d:-1", req.KenBurns.ScaleWidth))
			chain = append(chain, fmt.Sprintf("zoompan=z='zoom+%f':x=%s:y=%s:d=%d:s=%dx%d:fps=%d",
				req.KenBurns.ZoomRate, req.KenBurns.PanX, req.KenBurns.PanY,
				durationFrames, req.Width, req.Height, req.FPS))
		} else {
			chain = append(chain, fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase", req.Width, req.Height))
			chain = append(chain, fmt.Sprintf("crop=%d:%d", req.Width, req.Height))
			chain = append(chain, fmt.Sprintf("fps=%d", req.FPS))
		}
		chain = append(chain, "setsar=1")

		if scene.Transition.HasFadeIn {
			chain = append(chain, fmt.Sprintf("fade=t=in:st=0:d=%.3f", scene.Transition.Duration))
		}
		if scene.Transition.HasFadeOut {
			fadeStart := scene.Duration - scene.Transition.Duration
			if fadeStart < 0 {
				fadeStart = 0
			}
			chain = append(chain, fmt.Sprintf("fade=t=out:st=%.3f:d=%.3f", fadeStart, scene.Transition.Duration))
		}

		filters = append(filters, fmt.Sprintf("[%d:v]%s[clip%d]", i, strings.Join(chain, ","), i))
	}

	// Chain clips with xfade. The offset accumulates real scene durations
	// minus the overlap consumed by each crossfade.
	if len(req.Scenes) == 1 {
		filters = append(filters, "[clip0]copy[v]")
	} else {
		current := "[clip0]"
		offset := 0.0
		for i := 1; i < len(req.Scenes); i++ {
			left := req.Scenes[i-1]
			td := crossfadeDuration(left, req.Scenes[i])
			offset += left.Duration - td

			out := fmt.Sprintf("[x%d]", i)
			if i == len(req.Scenes)-1 {
				out = "[v]"
			}
			filters = append(filters, fmt.Sprintf("%s[clip%d]xfade=transition=%s:duration=%.3f:offset=%.3f%s",
				current, i, left.Transition.Kind, td, offset, out))
			current = out
		}
	}

	// Audio: concat narration clips in scene order, then mix in music.
	narrationStart := len(req.Scenes)
	var audioFilter string
	switch {
	case len(req.NarrationFiles) > 0 && req.BackgroundMusic != "":
		var inputs []string
		for i := range req.NarrationFiles {
			inputs = append(inputs, fmt.Sprintf("[%d:a]", narrationStart+i))
		}
		musicIndex := narrationStart + len(req.NarrationFiles)
		audioFilter = fmt.Sprintf("%sconcat=n=%d:v=0:a=1[voice];[%d:a]volume=%.2f[music];[voice][music]amix=inputs=2:duration=first[a]",
			strings.Join(inputs, ""), len(req.NarrationFiles), musicIndex, musicVolume(req))
	case len(req.NarrationFiles) > 0:
		var inputs []string
		for i := range req.NarrationFiles {
			inputs = append(inputs, fmt.Sprintf("[%d:a]", narrationStart+i))
		}
		audioFilter = fmt.Sprintf("%sconcat=n=%d:v=0:a=1[a]", strings.Join(inputs, ""), len(req.NarrationFiles))
	case req.BackgroundMusic != "":
		audioFilter = fmt.Sprintf("[%d:a]volume=%.2f[a]", narrationStart, musicVolume(req))
	}
	if audioFilter != "" {
		filters = append(filters, audioFilter)
	}

	return strings.Join(filters, ";"), nil
}

// HasAudio reports whether the graph produced for req emits an [a] stream.
func HasAudio(req *RenderRequest) bool {
	return len(req.NarrationFiles) > 0 || req.BackgroundMusic != ""
}

// crossfadeDuration clamps the configured transition so it never exceeds
// either adjacent clip. Short scenes would otherwise push the xfade offset
// negative and ffmpeg rejects the graph.
func crossfadeDuration(left, right segmenter.Scene) float64 {
	td := left.Transition.Duration
	if td > left.Duration {
		td = left.Duration
	}
	if td > right.Duration {
		td = right.Duration
	}
	return td
}

func musicVolume(req *RenderRequest) float64 {
	if req.MusicVolume <= 0 {
		return 0.2
	}
	return req.MusicVolume
}

func validateRequest(req *RenderRequest) error {
	if len(req.Scenes) == 0 {
		return fmt.Errorf("no scenes to render")
	}
	if len(req.ImageFiles) != len(req.Scenes) {
		return fmt.Errorf("have %d scenes but %d images", len(req.Scenes), len(req.ImageFiles))
	}
	if len(req.NarrationFiles) > 0 && len(req.NarrationFiles) != len(req.Scenes) {
		return fmt.Errorf("have %d scenes but %d narration clips", len(req.Scenes), len(req.NarrationFiles))
	}
	if req.Width <= 0 || req.Height <= 0 || req.FPS <= 0 {
		return fmt.Errorf("invalid output format %dx%d@%d", req.Width, req.Height, req.FPS)
	}
	return nil
}

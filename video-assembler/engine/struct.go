package engine

import (
	"slideshow_automation/scene-engine/segmenter"
)

// RenderRequest describes one slideshow render: the scene set produced by the
// scene engine plus the assets (one image per scene, one narration clip per
// scene, optional background music).
type RenderRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	FPS    int `json:"fps"`

	Scenes []segmenter.Scene `json:"scenes"`

	// ImageFiles[i] is the still shown during Scenes[i].
	ImageFiles []string `json:"image_files"`
	// NarrationFiles[i] is the TTS clip for Scenes[i]. Optional.
	NarrationFiles []string `json:"narration_files,omitempty"`

	BackgroundMusic string  `json:"background_music,omitempty"`
	MusicVolume     float64 `json:"music_volume,omitempty"`

	KenBurns KenBurnsConfig `json:"ken_burns"`
}

type KenBurnsConfig struct {
	Enabled    bool    `json:"enabled"`
	ZoomRate   float64 `json:"zoom_rate"`
	PanX       string  `json:"pan_x"`
	PanY       string  `json:"pan_y"`
	ScaleWidth int     `json:"scale_width"`
}

// Helper function to create Ken Burns presets
func CreateKenBurnsPreset(preset string) KenBurnsConfig {
	switch preset {
	case "zoom_in_slow":
		return KenBurnsConfig{
			Enabled:    true,
			ZoomRate:   0.0002,
			PanX:       "iw/2-(iw/zoom/2)",
			PanY:       "ih/2-(ih/zoom/2)",
			ScaleWidth: 6000,
		}
	case "zoom_in_fast":
		return KenBurnsConfig{
			Enabled:    true,
			ZoomRate:   0.001,
			PanX:       "iw/2-(iw/zoom/2)",
			PanY:       "ih/2-(ih/zoom/2)",
			ScaleWidth: 8000,
		}
	case "pan_left":
		return KenBurnsConfig{
			Enabled:    true,
			ZoomRate:   0.0005,
			PanX:       "iw-iw/zoom",
			PanY:       "ih/2-(ih/zoom/2)",
			ScaleWidth: 8000,
		}
	case "pan_right":
		return KenBurnsConfig{
			Enabled:    true,
			ZoomRate:   0.0005,
			PanX:       "0",
			PanY:       "ih/2-(ih/zoom/2)",
			ScaleWidth: 8000,
		}
	default: // "standard"
		return KenBurnsConfig{
			Enabled:    true,
			ZoomRate:   0.0005,
			PanX:       "iw/2-(iw/zoom/2)",
			PanY:       "ih/2-(ih/zoom/2)",
			ScaleWidth: 8000,
		}
	}
}

package segmenter

import "fmt"

// SceneSet is the full result of one pipeline run, shaped for serialization as
// a scenes.json document consumed by the renderer.
type SceneSet struct {
	Scenes        []Scene      `json:"scenes"`
	TotalScenes   int          `json:"total_scenes"`
	TotalDuration float64      `json:"total_duration"`
	Config        Config       `json:"generation_settings"`
	Diagnostics   []Diagnostic `json:"diagnostics,omitempty"`
}

// BuildScenes runs the whole pipeline: validate, group, partition. Each run
// owns its own buffers; concurrent runs over different inputs are safe.
func BuildScenes(segments []TranscriptSegment, cfg Config) (SceneSet, error) {
	if err := cfg.Validate(); err != nil {
		return SceneSet{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := ValidateSegments(segments); err != nil {
		return SceneSet{}, fmt.Errorf("invalid transcript: %w", err)
	}

	groups, groupDiags := GroupSegments(segments, cfg)
	scenes, sceneDiags := PartitionIntoScenes(groups, cfg)

	set := SceneSet{
		Scenes:      scenes,
		TotalScenes: len(scenes),
		Config:      cfg,
		Diagnostics: append(groupDiags, sceneDiags...),
	}
	if len(scenes) > 0 {
		set.TotalDuration = scenes[len(scenes)-1].End
	}
	return set, nil
}

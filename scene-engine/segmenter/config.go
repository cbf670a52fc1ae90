package segmenter

import "fmt"

// Default timing constants. These mirror the production presets used by the
// slideshow renderer: 12s ceiling keeps images dynamic, 4s floor avoids
// flash cuts, 1.2s of silence is treated as a narrative pause.
const (
	DefaultMaxSceneDuration    = 12.0
	DefaultMinSceneDuration    = 4.0
	DefaultTargetSceneDuration = 8.0
	DefaultPauseThreshold      = 1.2
	DefaultTransitionDuration  = 1.0
	DefaultReserveFraction     = 0.3
	DefaultLocale              = "es"
)

// Config holds the process-wide segmentation constants.
type Config struct {
	// MaxSceneDuration is the hard ceiling for a single scene, in seconds.
	MaxSceneDuration float64 `json:"max_scene_duration"`
	// MinSceneDuration is the floor; short scenes are padded by extending
	// their end, never by moving their start.
	MinSceneDuration float64 `json:"min_scene_duration"`
	// TargetSceneDuration is informational only; nothing branches on it.
	TargetSceneDuration float64 `json:"target_scene_duration"`
	// PauseThreshold is the silence gap, in seconds, that closes a group.
	PauseThreshold float64 `json:"pause_threshold"`
	// TransitionDuration is the cross-transition length between scenes.
	TransitionDuration float64 `json:"transition_duration"`
	// ReserveFraction is how much of the transition duration interior
	// scenes give up from their ceiling so overlapping fades with both
	// neighbors cannot push on-screen time past MaxSceneDuration.
	ReserveFraction float64 `json:"transition_reserve_fraction"`
	// Locale selects the discourse-marker lexicon.
	Locale string `json:"locale"`
	// Lexicon overrides the built-in marker lists. Nil means
	// DefaultLexicon(). Not serialized; scenes.json records the locale only.
	Lexicon MarkerLexicon `json:"-"`
}

// DefaultConfig returns the production preset.
func DefaultConfig() Config {
	return Config{
		MaxSceneDuration:    DefaultMaxSceneDuration,
		MinSceneDuration:    DefaultMinSceneDuration,
		TargetSceneDuration: DefaultTargetSceneDuration,
		PauseThreshold:      DefaultPauseThreshold,
		TransitionDuration:  DefaultTransitionDuration,
		ReserveFraction:     DefaultReserveFraction,
		Locale:              DefaultLocale,
	}
}

// Validate rejects constant combinations the partitioner cannot honor. It is
// meant to run once at startup: scene generation itself never re-checks these.
func (c Config) Validate() error {
	if c.MaxSceneDuration <= 0 {
		return fmt.Errorf("max_scene_duration must be positive, got %.2f", c.MaxSceneDuration)
	}
	if c.MinSceneDuration <= 0 {
		return fmt.Errorf("min_scene_duration must be positive, got %.2f", c.MinSceneDuration)
	}
	if c.MinSceneDuration > c.MaxSceneDuration {
		return fmt.Errorf("min_scene_duration %.2f exceeds max_scene_duration %.2f", c.MinSceneDuration, c.MaxSceneDuration)
	}
	if c.PauseThreshold <= 0 {
		return fmt.Errorf("pause_threshold must be positive, got %.2f", c.PauseThreshold)
	}
	if c.TransitionDuration < 0 {
		return fmt.Errorf("transition_duration must not be negative, got %.2f", c.TransitionDuration)
	}
	if c.ReserveFraction < 0 || c.ReserveFraction >= 1 {
		return fmt.Errorf("transition_reserve_fraction must be in [0,1), got %.2f", c.ReserveFraction)
	}
	// An interior ceiling below the floor means the reserve can never be
	// honored; refuse the configuration instead of silently flooring.
	if c.MaxSceneDuration-c.TransitionDuration*c.ReserveFraction < c.MinSceneDuration {
		return fmt.Errorf("transition reserve %.2f leaves interior scenes below min_scene_duration %.2f",
			c.TransitionDuration*c.ReserveFraction, c.MinSceneDuration)
	}
	return nil
}

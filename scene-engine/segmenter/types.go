package segmenter

// TranscriptSegment is the atomic time-stamped unit coming out of speech-to-text.
// Segments are consumed read-only; text may be empty and is tolerated.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Duration returns the wall-clock span of the segment.
func (s TranscriptSegment) Duration() float64 {
	return s.End - s.Start
}

// CloseReason records why the grouper closed a semantic group. Diagnostic only,
// nothing downstream branches on it.
type CloseReason string

const (
	CloseLastSegment   CloseReason = "last_segment"
	CloseLongPause     CloseReason = "long_pause"
	CloseSemanticBreak CloseReason = "semantic_break"
)

// SemanticGroup is a contiguous run of transcript segments merged by the grouper.
// Duration is wall-clock span (End-Start), so it includes internal gaps between
// member segments. Groups are immutable after creation.
type SemanticGroup struct {
	Text        string              `json:"text"`
	Start       float64             `json:"start"`
	End         float64             `json:"end"`
	Duration    float64             `json:"duration"`
	Members     []TranscriptSegment `json:"segments"`
	CloseReason CloseReason         `json:"close_reason"`
}

// SceneKind distinguishes a group emitted whole from a subdivision chunk.
type SceneKind string

const (
	KindSingleScene SceneKind = "single_scene"
	KindSubScene    SceneKind = "sub_scene"
)

// TransitionKind names the cross transition used between adjacent scenes.
type TransitionKind string

const TransitionDissolve TransitionKind = "dissolve"

// TransitionInfo is attached to every scene. HasFadeIn is true only for the
// very first scene of the whole sequence, HasFadeOut only for the very last.
type TransitionInfo struct {
	HasFadeIn  bool           `json:"has_fade_in"`
	HasFadeOut bool           `json:"has_fade_out"`
	Kind       TransitionKind `json:"transition_kind"`
	Duration   float64        `json:"transition_duration"`
}

// Scene is the final timed unit driving one rendered visual asset.
// Index is dense and 0-based, assigned after all scenes are generated.
// GroupIndex is a diagnostic back-reference to the originating group.
type Scene struct {
	Index      int            `json:"index"`
	Text       string         `json:"text"`
	Start      float64        `json:"start"`
	End        float64        `json:"end"`
	Duration   float64        `json:"duration"`
	Kind       SceneKind      `json:"kind"`
	GroupIndex int            `json:"group_index"`
	SubIndex   *int           `json:"sub_index,omitempty"`
	TotalSubs  *int           `json:"total_subs,omitempty"`
	Transition TransitionInfo `json:"transition"`
}

// DiagnosticLevel classifies pipeline diagnostics.
type DiagnosticLevel string

const (
	LevelDebug DiagnosticLevel = "debug"
	LevelInfo  DiagnosticLevel = "info"
	LevelWarn  DiagnosticLevel = "warn"
)

// Diagnostic is a structured note emitted by the core instead of logging.
// The core functions stay pure; callers decide whether to print, store or
// discard these.
type Diagnostic struct {
	Level   DiagnosticLevel `json:"level"`
	Message string          `json:"message"`
}

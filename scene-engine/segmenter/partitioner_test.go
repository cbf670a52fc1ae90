package segmenter

import (
	"math"
	"testing"
)

// group builds a SemanticGroup directly for partitioner tests.
func group(start, end float64, members ...TranscriptSegment) SemanticGroup {
	text := joinSegmentTexts(members)
	return SemanticGroup{
		Text:        text,
		Start:       start,
		End:         end,
		Duration:    end - start,
		Members:     members,
		CloseReason: CloseLastSegment,
	}
}

func TestPartition_EmptyInput(t *testing.T) {
	t.Parallel()

	scenes, _ := PartitionIntoScenes(nil, DefaultConfig())
	if len(scenes) != 0 {
		t.Fatalf("len(scenes)=%d, want 0", len(scenes))
	}
}

func TestPartition_ShortGroupPaddedToMinimum(t *testing.T) {
	t.Parallel()

	groups := []SemanticGroup{group(0, 3, seg(0, 3, "Hola"))}
	scenes, _ := PartitionIntoScenes(groups, DefaultConfig())

	if len(scenes) != 1 {
		t.Fatalf("len(scenes)=%d, want 1", len(scenes))
	}
	s := scenes[0]
	if s.Start != 0 || s.End != 4 || s.Duration != 4 {
		t.Fatalf("scene timing %v/%v/%v, want 0/4/4 (end extended, start anchored)", s.Start, s.End, s.Duration)
	}
	if s.Kind != KindSingleScene {
		t.Fatalf("kind=%s, want %s", s.Kind, KindSingleScene)
	}
	if s.SubIndex != nil || s.TotalSubs != nil {
		t.Fatal("single scene must not carry sub-scene fields")
	}
}

func TestPartition_MinimumFloorNeverMovesStart(t *testing.T) {
	t.Parallel()

	groups := []SemanticGroup{group(10, 11, seg(10, 11, "corto"))}
	scenes, _ := PartitionIntoScenes(groups, DefaultConfig())

	if scenes[0].Start != 10 {
		t.Fatalf("start=%v, want 10", scenes[0].Start)
	}
	if scenes[0].End != 14 {
		t.Fatalf("end=%v, want 14", scenes[0].End)
	}
}

func TestEffectiveMaxDuration(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig() // max 12, transition 1.0, reserve 0.3

	tests := []struct {
		name  string
		index int
		total int
		want  float64
	}{
		{"first group keeps full budget", 0, 5, 12.0},
		{"last group keeps full budget", 4, 5, 12.0},
		{"interior group pays the reserve", 2, 5, 11.7},
		{"only group keeps full budget", 0, 1, 12.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := effectiveMaxDuration(tt.index, tt.total, cfg)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("effectiveMaxDuration(%d,%d)=%v, want %v", tt.index, tt.total, got, tt.want)
			}
		})
	}
}

func TestEffectiveMaxDuration_FlooredAtMinimum(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MaxSceneDuration = 5.0
	cfg.MinSceneDuration = 4.9
	cfg.TransitionDuration = 1.0 // interior: 5.0 - 0.3 = 4.7 < min

	if got := effectiveMaxDuration(1, 3, cfg); got != 4.9 {
		t.Fatalf("effectiveMaxDuration=%v, want floor 4.9", got)
	}
}

func TestPartition_SubdividesLongGroup(t *testing.T) {
	t.Parallel()

	// Ten segments, 0-40s, one group. Single group keeps the full 12s
	// budget, so ceil(40/12) = 4 sub-scenes.
	members := make([]TranscriptSegment, 10)
	for i := range members {
		members[i] = seg(float64(i*4), float64(i*4+4), "texto del segmento.")
	}
	groups := []SemanticGroup{group(0, 40, members...)}

	scenes, _ := PartitionIntoScenes(groups, DefaultConfig())

	want := int(math.Ceil(40.0 / 12.0))
	if len(scenes) != want {
		t.Fatalf("len(scenes)=%d, want %d", len(scenes), want)
	}
	for i, s := range scenes {
		if s.Kind != KindSubScene {
			t.Fatalf("scene %d kind=%s, want %s", i, s.Kind, KindSubScene)
		}
		if s.GroupIndex != 0 {
			t.Fatalf("scene %d group_index=%d, want 0", i, s.GroupIndex)
		}
		if s.SubIndex == nil || *s.SubIndex != i {
			t.Fatalf("scene %d sub_index=%v, want %d", i, s.SubIndex, i)
		}
		if s.TotalSubs == nil || *s.TotalSubs != want {
			t.Fatalf("scene %d total_subs=%v, want %d", i, s.TotalSubs, want)
		}
	}

	// Chunking is by segment count: 10/4 = 2 per chunk, last absorbs the rest.
	if len(scenes) == 4 {
		if scenes[0].Start != 0 || scenes[0].End != 8 {
			t.Fatalf("sub0 spans %v-%v, want 0-8", scenes[0].Start, scenes[0].End)
		}
		if scenes[3].Start != 24 || scenes[3].End != 40 {
			t.Fatalf("sub3 spans %v-%v, want 24-40 (remainder absorbed)", scenes[3].Start, scenes[3].End)
		}
	}
}

func TestPartition_MoreSubScenesThanSegments(t *testing.T) {
	t.Parallel()

	// One 30s segment forces subdivision but offers only one boundary-free
	// chunk: empty chunks are skipped, fewer scenes than the formula come out.
	groups := []SemanticGroup{group(0, 30, seg(0, 30, "monólogo largo."))}

	scenes, _ := PartitionIntoScenes(groups, DefaultConfig())
	if len(scenes) != 1 {
		t.Fatalf("len(scenes)=%d, want 1 (empty chunks skipped)", len(scenes))
	}
	if scenes[0].Start != 0 || scenes[0].End != 30 {
		t.Fatalf("scene spans %v-%v, want 0-30", scenes[0].Start, scenes[0].End)
	}
}

func TestPartition_SkipsEmptyGroup(t *testing.T) {
	t.Parallel()

	groups := []SemanticGroup{
		group(0, 5, seg(0, 5, "antes")),
		{Start: 5, End: 8, Duration: 3}, // malformed: no members
		group(8, 13, seg(8, 13, "después del hueco")),
	}

	scenes, diags := PartitionIntoScenes(groups, DefaultConfig())
	if len(scenes) != 2 {
		t.Fatalf("len(scenes)=%d, want 2", len(scenes))
	}

	warned := false
	for _, d := range diags {
		if d.Level == LevelWarn {
			warned = true
		}
	}
	if !warned {
		t.Fatal("skipping an empty group must emit a warning diagnostic")
	}
}

func TestPartition_IndexDensityAndFades(t *testing.T) {
	t.Parallel()

	var members []TranscriptSegment
	for i := 0; i < 8; i++ {
		members = append(members, seg(float64(i*5), float64(i*5+5), "segmento."))
	}
	groups := []SemanticGroup{
		group(0, 40, members...),        // subdivides
		group(41, 48, seg(41, 48, "x")), // single
	}

	scenes, _ := PartitionIntoScenes(groups, DefaultConfig())
	if len(scenes) < 2 {
		t.Fatalf("len(scenes)=%d, want at least 2", len(scenes))
	}

	fadeIns, fadeOuts := 0, 0
	for i, s := range scenes {
		if s.Index != i {
			t.Fatalf("scene %d has index %d, want dense 0..N-1", i, s.Index)
		}
		if s.Transition.HasFadeIn {
			fadeIns++
			if i != 0 {
				t.Fatalf("fade-in on scene %d, only scene 0 may fade in", i)
			}
		}
		if s.Transition.HasFadeOut {
			fadeOuts++
			if i != len(scenes)-1 {
				t.Fatalf("fade-out on scene %d, only the last scene may fade out", i)
			}
		}
		if s.Transition.Kind != TransitionDissolve {
			t.Fatalf("scene %d transition kind=%s, want %s", i, s.Transition.Kind, TransitionDissolve)
		}
		if s.Transition.Duration != DefaultTransitionDuration {
			t.Fatalf("scene %d transition duration=%v, want %v", i, s.Transition.Duration, DefaultTransitionDuration)
		}
	}
	if fadeIns != 1 || fadeOuts != 1 {
		t.Fatalf("fade-ins=%d fade-outs=%d, want exactly one of each", fadeIns, fadeOuts)
	}
}

func TestPartition_DurationInvariants(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	var members []TranscriptSegment
	for i := 0; i < 20; i++ {
		members = append(members, seg(float64(i*3), float64(i*3+3), "frase corta."))
	}
	var tail []TranscriptSegment
	for i := 0; i < 12; i++ {
		tail = append(tail, seg(70+float64(i*5), 70+float64(i*5+5), "otra frase."))
	}
	groups := []SemanticGroup{
		group(0, 60, members[:12]...),   // long, subdivides
		group(61, 66, seg(61, 66, "a")), // 5s interior single
		group(70, 130, tail...),         // long, subdivides
	}

	scenes, _ := PartitionIntoScenes(groups, cfg)
	if len(scenes) == 0 {
		t.Fatal("expected scenes")
	}
	for _, s := range scenes {
		if s.End < s.Start {
			t.Fatalf("scene %d has negative span %v-%v", s.Index, s.Start, s.End)
		}
		if math.Abs(s.Duration-(s.End-s.Start)) > 1e-9 {
			t.Fatalf("scene %d duration %v != end-start %v", s.Index, s.Duration, s.End-s.Start)
		}
		if s.Duration < cfg.MinSceneDuration {
			t.Fatalf("scene %d duration %v below floor %v", s.Index, s.Duration, cfg.MinSceneDuration)
		}
	}
}

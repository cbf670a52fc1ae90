package segmenter

import (
	"fmt"
	"math"
)

// PartitionIntoScenes turns semantic groups into the final scene sequence.
// Groups that fit their position-adjusted ceiling become one scene; longer
// groups are subdivided on segment boundaries. Indices and the fade flags are
// assigned in a second pass once generation order is final.
//
// A group with no members is an upstream bug, not a reason to lose the whole
// run: it is skipped with a warning diagnostic. Empty input returns an empty
// sequence.
func PartitionIntoScenes(groups []SemanticGroup, cfg Config) ([]Scene, []Diagnostic) {
	var scenes []Scene
	var diags []Diagnostic

	for g, group := range groups {
		if len(group.Members) == 0 {
			diags = append(diags, Diagnostic{
				Level:   LevelWarn,
				Message: fmt.Sprintf("group %d has no segments, skipping", g),
			})
			continue
		}

		effMax := effectiveMaxDuration(g, len(groups), cfg)

		if group.Duration <= effMax {
			scenes = append(scenes, singleScene(group, g, cfg))
			continue
		}

		subs, subDiags := subdivideGroup(group, g, effMax, cfg)
		scenes = append(scenes, subs...)
		diags = append(diags, subDiags...)
	}

	// Second pass: dense 0-based indices in generation order, fades only on
	// the outermost scenes of the whole sequence.
	for i := range scenes {
		scenes[i].Index = i
		scenes[i].Transition.HasFadeIn = i == 0
		scenes[i].Transition.HasFadeOut = i == len(scenes)-1
	}

	return scenes, diags
}

// effectiveMaxDuration is the position-adjusted ceiling. The first and last
// groups have a free outer edge, so they keep the full budget; interior groups
// surrender a fraction of the transition duration as headroom for the
// overlapping fades with both neighbors.
func effectiveMaxDuration(groupIndex, totalGroups int, cfg Config) float64 {
	if groupIndex == 0 || groupIndex == totalGroups-1 {
		return cfg.MaxSceneDuration
	}
	effective := cfg.MaxSceneDuration - cfg.TransitionDuration*cfg.ReserveFraction
	return math.Max(effective, cfg.MinSceneDuration)
}

func singleScene(group SemanticGroup, groupIndex int, cfg Config) Scene {
	start, end := clampSceneTiming(group.Start, group.End, cfg)
	return Scene{
		Text:       group.Text,
		Start:      start,
		End:        end,
		Duration:   end - start,
		Kind:       KindSingleScene,
		GroupIndex: groupIndex,
		Transition: baseTransition(cfg),
	}
}

// subdivideGroup splits an over-long group into contiguous chunks by segment
// count. The last chunk absorbs the remainder; chunks that come out empty
// (more sub-scenes than segments) are skipped, yielding fewer scenes than the
// formula asked for. Chunk boundaries fall on segment boundaries only.
func subdivideGroup(group SemanticGroup, groupIndex int, effMax float64, cfg Config) ([]Scene, []Diagnostic) {
	members := group.Members
	numSubs := int(math.Ceil(group.Duration / effMax))
	if numSubs < 2 {
		numSubs = 2
	}
	perChunk := len(members) / numSubs
	if perChunk < 1 {
		perChunk = 1
	}

	var scenes []Scene
	var diags []Diagnostic
	diags = append(diags, Diagnostic{
		Level:   LevelInfo,
		Message: fmt.Sprintf("group %d: %.1fs exceeds %.1fs, subdividing into %d sub-scenes", groupIndex, group.Duration, effMax, numSubs),
	})

	for sub := 0; sub < numSubs; sub++ {
		lo := sub * perChunk
		hi := (sub + 1) * perChunk
		if sub == numSubs-1 {
			hi = len(members)
		}
		if lo >= len(members) || lo >= hi {
			continue
		}

		chunk := members[lo:hi]
		start, end := clampSceneTiming(chunk[0].Start, chunk[len(chunk)-1].End, cfg)

		if sub < numSubs-1 && !IsGoodCutPoint(chunk[len(chunk)-1].Text) {
			diags = append(diags, Diagnostic{
				Level:   LevelDebug,
				Message: fmt.Sprintf("group %d sub %d ends mid-phrase", groupIndex, sub),
			})
		}

		subIdx, total := sub, numSubs
		scenes = append(scenes, Scene{
			Text:       joinSegmentTexts(chunk),
			Start:      start,
			End:        end,
			Duration:   end - start,
			Kind:       KindSubScene,
			GroupIndex: groupIndex,
			SubIndex:   &subIdx,
			TotalSubs:  &total,
			Transition: baseTransition(cfg),
		})
	}

	return scenes, diags
}

// clampSceneTiming enforces the minimum duration by extending the end. The
// start is anchored to real audio timing and never drifts earlier.
func clampSceneTiming(start, end float64, cfg Config) (float64, float64) {
	if end-start < cfg.MinSceneDuration {
		end = start + cfg.MinSceneDuration
	}
	return start, end
}

func baseTransition(cfg Config) TransitionInfo {
	return TransitionInfo{
		Kind:     TransitionDissolve,
		Duration: cfg.TransitionDuration,
	}
}

package engine

import (
	"fmt"
	"os/exec"
	"strings"
)

// BuildFFmpegArgs assembles the complete ffmpeg argument list for a render,
// minus the output path. Input order must match BuildFilterComplex: images,
// then narration clips, then music.
func BuildFFmpegArgs(req *RenderRequest) ([]string, error) {
	filterComplex, err := BuildFilterComplex(req)
	if err != nil {
		return nil, err
	}

	args := []string{}

	for i, img := range req.ImageFiles {
		args = append(args, "-loop", "1", "-t", fmt.Sprintf("%.3f", req.Scenes[i].Duration), "-i", img)
	}
	for _, clip := range req.NarrationFiles {
		args = append(args, "-i", clip)
	}
	if req.BackgroundMusic != "" {
		args = append(args, "-stream_loop", "-1", "-i", req.BackgroundMusic)
	}

	args = append(args, "-filter_complex", filterComplex)
	args = append(args, "-map", "[v]")
	if HasAudio(req) {
		args = append(args, "-map", "[a]")
	}

	encoder, encoderArgs := getEncoderSettings()
	args = append(args, "-c:v", encoder)
	args = append(args, encoderArgs...)
	args = append(args, "-pix_fmt", "yuv420p")

	if HasAudio(req) {
		args = append(args, "-c:a", "aac", "-b:a", "128k")
	}

	args = append(args, "-t", fmt.Sprintf("%.3f", TotalOutputDuration(req)), "-y")

	return args, nil
}

// TotalOutputDuration is the rendered length: scene durations minus the
// overlap each crossfade consumes.
func TotalOutputDuration(req *RenderRequest) float64 {
	total := 0.0
	for _, scene := range req.Scenes {
		total += scene.Duration
	}
	for i := 1; i < len(req.Scenes); i++ {
		total -= crossfadeDuration(req.Scenes[i-1], req.Scenes[i])
	}
	return total
}

func ExecuteFFmpeg(args []string, outputPath string) error {
	args = append(args, outputPath)

	fmt.Printf("Executing FFmpeg command: ffmpeg %s\n", strings.Join(args, " "))

	cmd := exec.Command("ffmpeg", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("FFmpeg error: %v, output: %s", err, string(output))
	}

	return nil
}

package engine

import (
	"log"
	"os/exec"
	"strings"
)

// getEncoderSettings picks a hardware encoder when one works, otherwise CPU.
// Priority: NVIDIA NVENC, Intel QuickSync, libx264.
func getEncoderSettings() (string, []string) {
	if isNVIDIAGPUAvailable() {
		log.Printf("🚀 Using NVIDIA GPU encoding")
		return "h264_nvenc", []string{
			"-preset", "fast",
			"-rc", "vbr",
			"-cq", "21",
			"-b:v", "5M",
			"-maxrate", "8M",
			"-profile:v", "high",
		}
	}

	if isEncoderAvailable("h264_qsv") {
		log.Printf("🔵 Using Intel GPU encoding")
		return "h264_qsv", []string{
			"-preset", "fast",
			"-global_quality", "20",
		}
	}

	log.Printf("🖥️ Using CPU encoding")
	return "libx264", []string{
		"-preset", "medium",
		"-crf", "21",
		"-threads", "0",
	}
}

func isNVIDIAGPUAvailable() bool {
	cmd := exec.Command("nvidia-smi", "-L")
	output, err := cmd.Output()
	if err != nil {
		return false
	}
	if strings.TrimSpace(string(output)) == "" {
		return false
	}

	return isEncoderAvailable("h264_nvenc")
}

func isEncoderAvailable(encoder string) bool {
	testCmd := exec.Command("ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-f", "lavfi", "-i", "testsrc=duration=1:size=320x240:rate=1",
		"-t", "1",
		"-c:v", encoder,
		"-f", "null", "-")

	err := testCmd.Run()
	if err != nil {
		log.Printf("Encoder %s test failed: %v", encoder, err)
		return false
	}

	return true
}

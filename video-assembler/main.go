package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"slideshow_automation/scene-engine/segmenter"
	"slideshow_automation/scene-engine/transcript"
	"slideshow_automation/video-assembler/engine"
)

const (
	DefaultScenesFile = "scenes.json"
	DefaultImagesDir  = "./video-input/images"
	DefaultAudioDir   = "tts-narrator/output"
	DefaultOutputDir  = "./output"
)

func main() {
	fmt.Println("🎬 Starting Slideshow Assembler...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	scenesFile := envOr("SCENES_FILE", DefaultScenesFile)
	transcriptFile := os.Getenv("TRANSCRIPT_FILE")
	imagesDir := envOr("IMAGES_DIR", DefaultImagesDir)
	audioDir := envOr("AUDIO_DIR", DefaultAudioDir)
	outputDir := envOr("OUTPUT_DIR", DefaultOutputDir)
	musicFile := os.Getenv("BACKGROUND_MUSIC")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	set, err := resolveSceneSet(transcriptFile, scenesFile)
	if err != nil {
		log.Fatalf("Failed to load scenes: %v", err)
	}
	fmt.Printf("📋 Loaded %d scenes (%.1fs total)\n", set.TotalScenes, set.TotalDuration)

	images, err := collectImages(imagesDir, set.TotalScenes)
	if err != nil {
		log.Fatalf("Failed to collect images: %v", err)
	}

	narration := collectNarration(audioDir, set.Scenes)
	if narration == nil {
		fmt.Println("🔇 No narration clips found, rendering without voice track")
	} else {
		fmt.Printf("🎙️ Found %d narration clips in %s\n", len(narration), audioDir)
	}

	req := &engine.RenderRequest{
		Width:           1920,
		Height:          1080,
		FPS:             25,
		Scenes:          set.Scenes,
		ImageFiles:      images,
		NarrationFiles:  narration,
		BackgroundMusic: musicFile,
		MusicVolume:     envFloat("MUSIC_VOLUME", 0.2),
		KenBurns:        engine.CreateKenBurnsPreset(envOr("KEN_BURNS_PRESET", "standard")),
	}

	args, err := engine.BuildFFmpegArgs(req)
	if err != nil {
		log.Fatalf("Failed to build render command: %v", err)
	}

	outputPath := filepath.Join(outputDir, "final_video.mp4")
	if err := engine.ExecuteFFmpeg(args, outputPath); err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	fmt.Println("🎉 Slideshow assembled successfully!")
	fmt.Printf("📁 Output: %s (%.1fs)\n", outputPath, engine.TotalOutputDuration(req))

	if info, err := os.Stat(outputPath); err == nil {
		fmt.Printf("📊 Final video size: %.2f MB\n", float64(info.Size())/(1024*1024))
	}
}

// resolveSceneSet prefers a ready scenes.json; when TRANSCRIPT_FILE points at
// a transcription document instead, the segmentation pipeline runs here with
// default constants, so a transcript can be rendered without the API service.
func resolveSceneSet(transcriptFile, scenesFile string) (*segmenter.SceneSet, error) {
	if transcriptFile == "" {
		return loadSceneSet(scenesFile)
	}

	doc, err := transcript.Load(transcriptFile)
	if err != nil {
		return nil, err
	}
	set, err := segmenter.BuildScenes(doc.Segments, segmenter.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if len(set.Scenes) == 0 {
		return nil, fmt.Errorf("%s contains no segments", transcriptFile)
	}
	return &set, nil
}

func loadSceneSet(filename string) (*segmenter.SceneSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var set segmenter.SceneSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing %s: %v", filename, err)
	}
	if len(set.Scenes) == 0 {
		return nil, fmt.Errorf("%s contains no scenes", filename)
	}
	return &set, nil
}

// collectImages returns one image per scene, sorted by filename. When there
// are fewer images than scenes the list wraps around so every scene still
// gets a still.
func collectImages(dir string, sceneCount int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".png" || ext == ".jpg" || ext == ".jpeg" || ext == ".webp" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no images in %s", dir)
	}
	sort.Strings(files)

	images := make([]string, sceneCount)
	for i := 0; i < sceneCount; i++ {
		images[i] = files[i%len(files)]
	}
	return images, nil
}

// collectNarration looks for the scene_NNN.mp3 files the narrator writes.
// Returns nil unless a clip exists for every scene.
func collectNarration(dir string, scenes []segmenter.Scene) []string {
	clips := make([]string, len(scenes))
	for i, scene := range scenes {
		path := filepath.Join(dir, fmt.Sprintf("scene_%03d.mp3", scene.Index))
		if _, err := os.Stat(path); err != nil {
			return nil
		}
		clips[i] = path
	}
	return clips
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"slideshow_automation/scene-engine/segmenter"
)

type TranscriptionRequest struct {
	Language string `json:"language,omitempty"`
	Model    string `json:"model,omitempty"`
}

type TranscriptionResponse struct {
	Text      string                        `json:"text"`
	Segments  []segmenter.TranscriptSegment `json:"segments"`
	Language  string                        `json:"language,omitempty"`
	Duration  float64                       `json:"duration,omitempty"`
	Timestamp string                        `json:"timestamp"`
	Filename  string                        `json:"filename"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

const (
	UPLOAD_DIR    = "/tmp/uploads"
	MODELS_DIR    = "/models"
	DEFAULT_MODEL = "ggml-base.bin"
	MAX_FILE_SIZE = 100 << 20 // 100MB
)

// DEFAULT_LANGUAGE matches the scene engine's default marker lexicon so a
// transcript produced here segments sensibly without extra flags.
const DEFAULT_LANGUAGE = "es"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	// Create upload directory
	os.MkdirAll(UPLOAD_DIR, 0755)

	// Initialize Gin router
	r := gin.Default()

	// Middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// Routes
	r.GET("/health", healthCheck)
	r.POST("/transcribe", transcribeAudio)
	r.GET("/models", listModels)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8086"
	}

	log.Printf("🎙️  Transcriber API Server starting on port %s", port)
	log.Fatal(r.Run(":" + port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   "1.0.0",
	})
}

func listModels(c *gin.Context) {
	files, err := os.ReadDir(MODELS_DIR)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "failed_to_list_models",
			Message: "Could not read models directory",
		})
		return
	}

	var models []string
	for _, file := range files {
		if strings.HasSuffix(file.Name(), ".bin") {
			models = append(models, file.Name())
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"models":  models,
		"default": DEFAULT_MODEL,
	})
}

func transcribeAudio(c *gin.Context) {
	// Parse multipart form
	err := c.Request.ParseMultipartForm(MAX_FILE_SIZE)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse multipart form or file too large",
		})
		return
	}

	// Get uploaded file
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_audio_file",
			Message: "No audio file provided in 'audio' field",
		})
		return
	}
	defer file.Close()

	// Validate file type
	if !isValidAudioFile(header.Filename) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_file_type",
			Message: "Supported formats: mp3, wav, flac, m4a, ogg, webm, mp4",
		})
		return
	}

	var req TranscriptionRequest
	req.Language = c.PostForm("language")
	if req.Language == "" {
		req.Language = DEFAULT_LANGUAGE
	}
	req.Model = c.PostForm("model")
	if req.Model == "" {
		req.Model = DEFAULT_MODEL
	}

	// Generate unique filename
	fileID := uuid.New().String()
	ext := filepath.Ext(header.Filename)
	tempFilePath := filepath.Join(UPLOAD_DIR, fileID+ext)

	// Save uploaded file
	out, err := os.Create(tempFilePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "file_save_error",
			Message: "Failed to save uploaded file",
		})
		return
	}
	defer out.Close()
	defer os.Remove(tempFilePath) // Clean up

	_, err = io.Copy(out, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "file_save_error",
			Message: "Failed to save uploaded file",
		})
		return
	}

	// Perform transcription
	startTime := time.Now()
	segments, err := performTranscription(tempFilePath, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "transcription_failed",
			Message: err.Error(),
		})
		return
	}
	duration := time.Since(startTime).Seconds()

	var textParts []string
	for _, segment := range segments {
		textParts = append(textParts, segment.Text)
	}

	c.JSON(http.StatusOK, TranscriptionResponse{
		Text:      strings.Join(textParts, " "),
		Segments:  segments,
		Language:  req.Language,
		Duration:  duration,
		Timestamp: time.Now().Format(time.RFC3339),
		Filename:  header.Filename,
	})
}

func isValidAudioFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".mp3", ".wav", ".flac", ".m4a", ".ogg", ".webm", ".mp4"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}

func performTranscription(audioPath string, req TranscriptionRequest) ([]segmenter.TranscriptSegment, error) {
	modelPath := filepath.Join(MODELS_DIR, req.Model)

	// Check if model exists
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model not found: %s", req.Model)
	}

	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-l", req.Language,
	}

	cmd := exec.Command("whisper-cli", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("whisper execution failed: %s - %s", err.Error(), string(output))
	}

	segments := parseWhisperTimestamps(string(output))
	if len(segments) == 0 {
		return nil, fmt.Errorf("no timed segments in whisper output")
	}

	return segments, nil
}

// Regex to match timestamp format: [00:00:00.000 --> 00:00:05.000]  text
var timestampRegex = regexp.MustCompile(`\[(\d{2}):(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})\.(\d{3})\]\s*(.+)`)

func parseWhisperTimestamps(output string) []segmenter.TranscriptSegment {
	var segments []segmenter.TranscriptSegment

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matches := timestampRegex.FindStringSubmatch(line)
		if len(matches) != 10 {
			continue
		}

		text := strings.TrimSpace(matches[9])
		if text == "" {
			continue
		}

		segments = append(segments, segmenter.TranscriptSegment{
			Start: clockToSeconds(matches[1], matches[2], matches[3], matches[4]),
			End:   clockToSeconds(matches[5], matches[6], matches[7], matches[8]),
			Text:  text,
		})
	}

	return segments
}

func clockToSeconds(hh, mm, ss, millis string) float64 {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	s, _ := strconv.Atoi(ss)
	ms, _ := strconv.Atoi(millis)
	return float64(h)*3600 + float64(m)*60 + float64(s) + float64(ms)/1000
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slideshow_automation/scene-engine/segmenter"
	"slideshow_automation/scene-engine/transcript"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	if err := initializeMongoDB(); err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	r := mux.NewRouter()

	r.HandleFunc("/api/projects", createProjectHandler).Methods("POST")
	r.HandleFunc("/api/projects/{projectId}", getProjectHandler).Methods("GET")
	r.HandleFunc("/api/projects/{projectId}/transcription", attachTranscriptionHandler).Methods("POST")
	r.HandleFunc("/api/projects/{projectId}/scenes", generateScenesHandler).Methods("POST")
	r.HandleFunc("/api/projects/{projectId}/scenes", getScenesHandler).Methods("GET")
	r.HandleFunc("/api/scenes/preview", previewScenesHandler).Methods("POST")
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	port := getPort()
	fmt.Println("🎬 Scene Engine API Server starting...")
	fmt.Printf("📡 Server running on http://localhost:%s\n", port)
	fmt.Println("📚 API Endpoints:")
	fmt.Println("   POST /api/projects - Create project")
	fmt.Println("   GET  /api/projects/{projectId} - Project status")
	fmt.Println("   POST /api/projects/{projectId}/transcription - Attach transcript")
	fmt.Println("   POST /api/projects/{projectId}/scenes - Generate scenes")
	fmt.Println("   GET  /api/projects/{projectId}/scenes - Latest scene set")
	fmt.Println("   POST /api/scenes/preview - Stateless scene generation")
	fmt.Println("   GET  /health - Health check")

	log.Fatal(http.ListenAndServe(":"+port, r))
}

func createProjectHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = segmenter.DefaultLocale
	}

	now := time.Now()
	project := &Project{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(req.Title),
		Language:  language,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := insertProject(project); err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to create project: %v", err))
		return
	}

	log.Printf("✓ Project created: %s (%s)", project.Title, project.ID)
	respondJSON(w, http.StatusCreated, project)
}

func getProjectHandler(w http.ResponseWriter, r *http.Request) {
	project, ok := lookupProject(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func attachTranscriptionHandler(w http.ResponseWriter, r *http.Request) {
	project, ok := lookupProject(w, r)
	if !ok {
		return
	}

	var req AttachTranscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}
	if len(req.Segments) == 0 && req.SRT != "" {
		req.Segments = transcript.ParseSRT(req.SRT)
	}
	if err := segmenter.ValidateSegments(req.Segments); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid transcript: %v", err))
		return
	}

	update := bson.M{
		"transcript": req.Segments,
		"status":     StatusPending,
	}
	if err := updateProject(project.ID, update); err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to store transcript: %v", err))
		return
	}

	log.Printf("✓ Transcript attached to %s: %d segments", project.ID, len(req.Segments))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"project_id": project.ID,
		"segments":   len(req.Segments),
		"status":     StatusPending,
	})
}

func generateScenesHandler(w http.ResponseWriter, r *http.Request) {
	project, ok := lookupProject(w, r)
	if !ok {
		return
	}
	if len(project.Transcript) == 0 {
		respondWithError(w, http.StatusBadRequest, "project has no transcript attached")
		return
	}

	var req GenerateScenesRequest
	// An empty body means defaults; anything else must be valid JSON.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}
	cfg := resolveConfig(req.Config)
	cfg.Locale = project.Language

	setProjectStatus(project.ID, bson.M{"status": StatusProcessing})

	set, err := segmenter.BuildScenes(project.Transcript, cfg)
	if err != nil {
		setProjectStatus(project.ID, bson.M{"status": StatusFailed, "error_message": err.Error()})
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	logDiagnostics(project.ID, set.Diagnostics)

	record := &SceneSetRecord{
		ID:            uuid.New().String(),
		ProjectID:     project.ID,
		CreatedAt:     time.Now(),
		Scenes:        set.Scenes,
		TotalScenes:   set.TotalScenes,
		TotalDuration: set.TotalDuration,
		Config:        set.Config,
		Diagnostics:   set.Diagnostics,
	}
	if err := insertSceneSet(record); err != nil {
		setProjectStatus(project.ID, bson.M{"status": StatusFailed, "error_message": err.Error()})
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to store scenes: %v", err))
		return
	}

	setProjectStatus(project.ID, bson.M{
		"status":        StatusCompleted,
		"scene_count":   set.TotalScenes,
		"error_message": "",
	})

	log.Printf("✅ Scenes generated for %s: %d scenes, %.1fs total", project.ID, set.TotalScenes, set.TotalDuration)
	respondJSON(w, http.StatusOK, record)
}

func getScenesHandler(w http.ResponseWriter, r *http.Request) {
	project, ok := lookupProject(w, r)
	if !ok {
		return
	}

	record, err := getLatestSceneSet(project.ID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respondWithError(w, http.StatusNotFound, "no scenes generated for this project yet")
			return
		}
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// previewScenesHandler runs the pipeline without touching the database. This
// is the endpoint the dashboard uses while the operator tunes constants.
func previewScenesHandler(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	set, err := segmenter.BuildScenes(req.Segments, resolveConfig(req.Config))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, set)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	mongoStatus := "healthy"
	if err := mongoClient.Ping(ctx, nil); err != nil {
		mongoStatus = "unhealthy: " + err.Error()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "Scene Engine API",
		"version":   "1.0.0",
		"mongodb":   mongoStatus,
	})
}

func lookupProject(w http.ResponseWriter, r *http.Request) (*Project, bool) {
	projectID := mux.Vars(r)["projectId"]
	if projectID == "" {
		respondWithError(w, http.StatusBadRequest, "project ID is required")
		return nil, false
	}

	project, err := getProjectByID(projectID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return nil, false
		}
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return nil, false
	}
	return project, true
}

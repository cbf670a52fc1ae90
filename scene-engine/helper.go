package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"go.mongodb.org/mongo-driver/bson"

	"slideshow_automation/scene-engine/segmenter"
)

func getPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8087"
}

func getMongoURI() string {
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

func getMongoDB() string {
	if db := os.Getenv("MONGODB_DATABASE"); db != "" {
		return db
	}
	return "slideshow_automation"
}

func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
	log.Printf("request failed (%d): %s", statusCode, message)
}

// resolveConfig merges an optional request override onto the defaults. Zero
// fields keep their default so clients can override a single constant.
func resolveConfig(override *segmenter.Config) segmenter.Config {
	cfg := segmenter.DefaultConfig()
	if override == nil {
		return cfg
	}
	if override.MaxSceneDuration > 0 {
		cfg.MaxSceneDuration = override.MaxSceneDuration
	}
	if override.MinSceneDuration > 0 {
		cfg.MinSceneDuration = override.MinSceneDuration
	}
	if override.TargetSceneDuration > 0 {
		cfg.TargetSceneDuration = override.TargetSceneDuration
	}
	if override.PauseThreshold > 0 {
		cfg.PauseThreshold = override.PauseThreshold
	}
	if override.TransitionDuration > 0 {
		cfg.TransitionDuration = override.TransitionDuration
	}
	if override.ReserveFraction > 0 {
		cfg.ReserveFraction = override.ReserveFraction
	}
	if override.Locale != "" {
		cfg.Locale = override.Locale
	}
	return cfg
}

// setProjectStatus applies a status update and logs when the write fails, so
// a stale stored status is at least visible in the service log.
func setProjectStatus(projectID string, update bson.M) {
	if err := updateProject(projectID, update); err != nil {
		log.Printf("failed to update project %s: %v", projectID, err)
	}
}

func logDiagnostics(projectID string, diags []segmenter.Diagnostic) {
	for _, d := range diags {
		if d.Level == segmenter.LevelDebug {
			continue
		}
		log.Printf("[%s] %s: %s", projectID, d.Level, d.Message)
	}
}

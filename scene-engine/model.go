package main

import (
	"time"

	"slideshow_automation/scene-engine/segmenter"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Project is one narrated slideshow in progress. The transcript is attached
// after creation (it comes from the transcriber service) and scene sets are
// stored separately so regenerations keep history.
type Project struct {
	ID           string                        `json:"id" bson:"_id"`
	Title        string                        `json:"title" bson:"title"`
	Language     string                        `json:"language" bson:"language"`
	Status       string                        `json:"status" bson:"status"`
	CreatedAt    time.Time                     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time                     `json:"updated_at" bson:"updated_at"`
	Transcript   []segmenter.TranscriptSegment `json:"transcript,omitempty" bson:"transcript,omitempty"`
	SceneCount   int                           `json:"scene_count" bson:"scene_count"`
	ErrorMessage string                        `json:"error_message,omitempty" bson:"error_message,omitempty"`
}

// SceneSetRecord persists one pipeline run for a project.
type SceneSetRecord struct {
	ID            string                 `json:"id" bson:"_id"`
	ProjectID     string                 `json:"project_id" bson:"project_id"`
	CreatedAt     time.Time              `json:"created_at" bson:"created_at"`
	Scenes        []segmenter.Scene      `json:"scenes" bson:"scenes"`
	TotalScenes   int                    `json:"total_scenes" bson:"total_scenes"`
	TotalDuration float64                `json:"total_duration" bson:"total_duration"`
	Config        segmenter.Config       `json:"generation_settings" bson:"generation_settings"`
	Diagnostics   []segmenter.Diagnostic `json:"diagnostics,omitempty" bson:"diagnostics,omitempty"`
}

type CreateProjectRequest struct {
	Title    string `json:"title"`
	Language string `json:"language,omitempty"`
}

// AttachTranscriptionRequest mirrors the transcription.json document shape.
// SRT is an alternative payload: raw subtitle content for clients that only
// have an .srt file, used when segments is empty.
type AttachTranscriptionRequest struct {
	Metadata map[string]interface{}        `json:"metadata,omitempty"`
	Segments []segmenter.TranscriptSegment `json:"segments"`
	SRT      string                        `json:"srt,omitempty"`
}

// GenerateScenesRequest optionally overrides the default segmentation
// constants for this run.
type GenerateScenesRequest struct {
	Config *segmenter.Config `json:"config,omitempty"`
}

// PreviewRequest runs the pipeline statelessly: segments in, scenes out,
// nothing stored.
type PreviewRequest struct {
	Segments []segmenter.TranscriptSegment `json:"segments"`
	Config   *segmenter.Config             `json:"config,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

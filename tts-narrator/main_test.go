package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestGetVoices(t *testing.T) {
	t.Parallel()

	var gotKey, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("xi-api-key")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"voices":[{"voice_id":"abc","name":"Ana"},{"voice_id":"def","name":"Diego"}]}`))
	}))
	defer server.Close()

	client := &ElevenLabsClient{APIKey: "test-key", BaseURL: server.URL, Client: server.Client()}

	voices, err := client.GetVoices()
	if err != nil {
		t.Fatal(err)
	}
	if gotKey != "test-key" {
		t.Errorf("xi-api-key = %q, want test-key", gotKey)
	}
	if gotPath != "/voices" {
		t.Errorf("path = %q, want /voices", gotPath)
	}
	if len(voices) != 2 || voices[0]["voice_id"] != "abc" || voices[1]["name"] != "Diego" {
		t.Fatalf("unexpected voices: %v", voices)
	}
}

func TestGetVoices_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := &ElevenLabsClient{APIKey: "bad", BaseURL: server.URL, Client: server.Client()}
	if _, err := client.GetVoices(); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestTextToSpeech(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text-to-speech/voice-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := &ElevenLabsClient{APIKey: "k", BaseURL: server.URL, Client: server.Client()}

	audio, err := client.TextToSpeech("Hola a todos", "voice-1")
	if err != nil {
		t.Fatal(err)
	}
	if string(audio) != "mp3-bytes" {
		t.Fatalf("audio = %q", audio)
	}
}

func TestLoadSceneSet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "scenes.json")
	content := `{"scenes":[{"index":0,"text":"Hola","start":0,"end":4,"duration":4,
		"kind":"single_scene","group_index":0,
		"transition":{"has_fade_in":true,"has_fade_out":true,"transition_kind":"dissolve","transition_duration":1}}],
		"total_scenes":1,"total_duration":4}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := loadSceneSet(path)
	if err != nil {
		t.Fatal(err)
	}
	if set.TotalScenes != 1 || set.Scenes[0].Text != "Hola" {
		t.Fatalf("unexpected scene set: %+v", set)
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"scenes":[]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadSceneSet(empty); err == nil {
		t.Fatal("expected error for scene set with no scenes")
	}
}

func TestSceneAudioFilename(t *testing.T) {
	t.Parallel()

	if got := sceneAudioFilename(0); got != "scene_000.mp3" {
		t.Errorf("sceneAudioFilename(0) = %q", got)
	}
	if got := sceneAudioFilename(42); got != "scene_042.mp3" {
		t.Errorf("sceneAudioFilename(42) = %q", got)
	}
}

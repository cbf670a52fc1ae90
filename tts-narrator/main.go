package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"slideshow_automation/scene-engine/segmenter"
)

const (
	BaseURL    = "https://api.elevenlabs.io/v1"
	MaxRetries = 3
)

type Proxy struct {
	Server   string
	Username string
	Password string
}

type Config struct {
	APIKey     string
	VoiceID    string
	ScenesFile string
	OutputDir  string
	Proxy      *Proxy
}

type TTSRequest struct {
	Text          string                 `json:"text"`
	ModelID       string                 `json:"model_id"`
	VoiceSettings map[string]interface{} `json:"voice_settings"`
}

type ElevenLabsClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewElevenLabsClient(apiKey string, proxy *Proxy) *ElevenLabsClient {
	client := &http.Client{Timeout: 30 * time.Second}

	// Configure proxy if provided
	if proxy != nil && proxy.Server != "" {
		proxyURL, err := url.Parse("http://" + proxy.Server)
		if err != nil {
			fmt.Printf("Warning: Invalid proxy server format: %v\n", err)
		} else {
			if proxy.Username != "" {
				proxyURL.User = url.UserPassword(proxy.Username, proxy.Password)
			}
			client.Transport = &http.Transport{
				Proxy: http.ProxyURL(proxyURL),
			}
			fmt.Printf("Using proxy: %s\n", proxy.Server)
		}
	}

	return &ElevenLabsClient{
		APIKey:  apiKey,
		BaseURL: BaseURL,
		Client:  client,
	}
}

func (c *ElevenLabsClient) TextToSpeech(text, voiceID string) ([]byte, error) {
	requestBody := TTSRequest{
		Text:    text,
		ModelID: "eleven_multilingual_v2",
		VoiceSettings: map[string]interface{}{
			"stability":        0.5,
			"similarity_boost": 0.75,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %v", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.BaseURL, voiceID)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	return audioData, nil
}

// textToSpeechWithRetry retries transient API failures with linear backoff.
func (c *ElevenLabsClient) textToSpeechWithRetry(text, voiceID string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= MaxRetries; attempt++ {
		audioData, err := c.TextToSpeech(text, voiceID)
		if err == nil {
			return audioData, nil
		}
		lastErr = err
		fmt.Printf("Attempt %d/%d failed: %v\n", attempt, MaxRetries, err)
		if attempt < MaxRetries {
			time.Sleep(time.Duration(attempt) * 2 * time.Second)
		}
	}
	return nil, fmt.Errorf("text-to-speech failed after %d attempts: %v", MaxRetries, lastErr)
}

func (c *ElevenLabsClient) GetVoices() ([]map[string]interface{}, error) {
	url := fmt.Sprintf("%s/voices", c.BaseURL)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error decoding response: %v", err)
	}

	voices, ok := result["voices"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected response format")
	}

	var voiceList []map[string]interface{}
	for _, v := range voices {
		if voice, ok := v.(map[string]interface{}); ok {
			voiceList = append(voiceList, voice)
		}
	}

	return voiceList, nil
}

func loadSceneSet(filename string) (*segmenter.SceneSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %v", filename, err)
	}

	var set segmenter.SceneSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("error parsing %s: %v", filename, err)
	}
	if len(set.Scenes) == 0 {
		return nil, fmt.Errorf("file %s contains no scenes", filename)
	}

	return &set, nil
}

func saveAudioFile(audioData []byte, filename, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %v", err)
	}
	return os.WriteFile(filepath.Join(outputDir, filename), audioData, 0644)
}

func sceneAudioFilename(index int) string {
	return fmt.Sprintf("scene_%03d.mp3", index)
}

func loadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment defaults")
	}

	config := &Config{}

	config.APIKey = os.Getenv("ELEVENLABS_API_KEY")
	if config.APIKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY not set")
	}

	// VOICE_ID stays optional: without one, main lists the account's voices.
	config.VoiceID = os.Getenv("VOICE_ID")

	config.ScenesFile = os.Getenv("SCENES_FILE")
	if config.ScenesFile == "" {
		config.ScenesFile = "scenes.json"
	}

	config.OutputDir = os.Getenv("OUTPUT_DIR")
	if config.OutputDir == "" {
		config.OutputDir = "tts-narrator/output"
	}

	proxyServer := os.Getenv("PROXY_SERVER")
	if proxyServer != "" {
		config.Proxy = &Proxy{
			Server:   proxyServer,
			Username: os.Getenv("PROXY_USERNAME"),
			Password: os.Getenv("PROXY_PASSWORD"),
		}
	}

	return config, nil
}

func main() {
	config, err := loadConfig()
	if err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		os.Exit(1)
	}

	client := NewElevenLabsClient(config.APIKey, config.Proxy)

	if config.VoiceID == "" {
		fmt.Println("VOICE_ID not set. Available voices:")
		voices, err := client.GetVoices()
		if err != nil {
			fmt.Printf("Error listing voices: %v\n", err)
			os.Exit(1)
		}
		for _, voice := range voices {
			fmt.Printf("  %v - %v\n", voice["voice_id"], voice["name"])
		}
		fmt.Println("Set VOICE_ID in .env and run again.")
		return
	}

	set, err := loadSceneSet(config.ScenesFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d scenes from %s (%.1fs total)\n", set.TotalScenes, config.ScenesFile, set.TotalDuration)
	fmt.Printf("Using voice ID: %s\n", config.VoiceID)

	var totalBytes int
	for _, scene := range set.Scenes {
		fmt.Printf("[%d/%d] Narrating scene %d (%.1fs): %.60s...\n",
			scene.Index+1, set.TotalScenes, scene.Index, scene.Duration, scene.Text)

		audioData, err := client.textToSpeechWithRetry(scene.Text, config.VoiceID)
		if err != nil {
			fmt.Printf("Error generating speech for scene %d: %v\n", scene.Index, err)
			os.Exit(1)
		}

		filename := sceneAudioFilename(scene.Index)
		if err := saveAudioFile(audioData, filename, config.OutputDir); err != nil {
			fmt.Printf("Error saving audio file: %v\n", err)
			os.Exit(1)
		}
		totalBytes += len(audioData)
	}

	fmt.Printf("Narration complete: %d files in %s (%.2f KB)\n",
		set.TotalScenes, config.OutputDir, float64(totalBytes)/1024)
}

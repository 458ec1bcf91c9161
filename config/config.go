package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port            int
	AuthSecret      string
	MaxUploadSizeMB int
	DataDir         string

	// S3-compatible object storage (Backblaze B2 in production).
	StorageEndpoint string
	StorageRegion   string
	StorageKeyID    string
	StorageSecret   string
	StorageBucket   string

	// YouTube Data API key for metadata lookups.
	YouTubeAPIKey string
	// CaptionLang is the caption track language requested from the
	// platform before falling back to audio transcription.
	CaptionLang string

	// PicovoiceAccessKey licenses the Leopard speech-to-text engine.
	PicovoiceAccessKey string

	// External tool binaries; resolved via PATH when left as defaults.
	FFmpegPath string
	YtDlpPath  string
}

func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "5000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	maxUploadSizeMB, err := strconv.Atoi(getEnv("MAX_UPLOAD_SIZE_MB", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE_MB: %w", err)
	}

	authSecret := os.Getenv("AUTH_SECRET")
	if authSecret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is required")
	}

	cfg := &Config{
		Port:               port,
		AuthSecret:         authSecret,
		MaxUploadSizeMB:    maxUploadSizeMB,
		DataDir:            getEnv("DATA_DIR", "/data"),
		StorageEndpoint:    os.Getenv("B2_ENDPOINT"),
		StorageRegion:      getEnv("B2_REGION", "us-west-004"),
		StorageKeyID:       os.Getenv("B2_KEY_ID"),
		StorageSecret:      os.Getenv("B2_APP_KEY"),
		StorageBucket:      os.Getenv("B2_BUCKET_NAME"),
		YouTubeAPIKey:      os.Getenv("YOUTUBE_API_KEY"),
		CaptionLang:        getEnv("CAPTION_LANG", "en"),
		PicovoiceAccessKey: os.Getenv("PICOVOICE_ACCESS_KEY"),
		FFmpegPath:         getEnv("FFMPEG_PATH", "ffmpeg"),
		YtDlpPath:          getEnv("YTDLP_PATH", "yt-dlp"),
	}

	for name, value := range map[string]string{
		"B2_ENDPOINT":          cfg.StorageEndpoint,
		"B2_KEY_ID":            cfg.StorageKeyID,
		"B2_APP_KEY":           cfg.StorageSecret,
		"B2_BUCKET_NAME":       cfg.StorageBucket,
		"PICOVOICE_ACCESS_KEY": cfg.PicovoiceAccessKey,
	} {
		if value == "" {
			return nil, fmt.Errorf("%s is required", name)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

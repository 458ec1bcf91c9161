package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/insightreel/config"
	"github.com/bnema/insightreel/internal/adapter/converter/ffmpeg"
	"github.com/bnema/insightreel/internal/adapter/fetcher/ytdlp"
	HTTPAdapter "github.com/bnema/insightreel/internal/adapter/http"
	"github.com/bnema/insightreel/internal/adapter/objectstore/s3"
	"github.com/bnema/insightreel/internal/adapter/platform/youtube"
	sqlitestore "github.com/bnema/insightreel/internal/adapter/storage/sqlite"
	"github.com/bnema/insightreel/internal/adapter/transcriber/leopard"
	"github.com/bnema/insightreel/internal/infrastructure/logger"
	"github.com/bnema/insightreel/internal/port"
	"github.com/bnema/insightreel/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error.Printf("failed to load config: %v", err)
		os.Exit(1)
	}

	logger.Info.Printf("starting insightreel on port %d", cfg.Port)

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		logger.Error.Printf("failed to create data directory: %v", err)
		os.Exit(1)
	}

	store, err := sqlitestore.NewStore(cfg.DataDir)
	if err != nil {
		logger.Error.Printf("failed to create store: %v", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	objects, err := s3.NewStore(context.Background(), s3.Options{
		Endpoint: cfg.StorageEndpoint,
		Region:   cfg.StorageRegion,
		KeyID:    cfg.StorageKeyID,
		Secret:   cfg.StorageSecret,
		Bucket:   cfg.StorageBucket,
	})
	if err != nil {
		logger.Error.Printf("failed to create object store: %v", err)
		os.Exit(1)
	}

	// Without an API key the caption shortcut is skipped and every
	// remote video goes through audio transcription.
	var platform port.VideoPlatform
	if cfg.YouTubeAPIKey != "" {
		platform = youtube.NewClient(cfg.YouTubeAPIKey)
	} else {
		logger.Info.Printf("YOUTUBE_API_KEY not set, caption lookup disabled")
	}

	videoSvc := service.NewVideoService(service.VideoServiceDeps{
		Videos:      store,
		Users:       store,
		Settings:    store,
		Objects:     objects,
		Platform:    platform,
		Fetcher:     ytdlp.NewFetcher(cfg.YtDlpPath),
		Normalizer:  ffmpeg.NewNormalizer(cfg.FFmpegPath),
		Transcriber: leopard.NewEngine(cfg.PicovoiceAccessKey),
		DataDir:     cfg.DataDir,
		CaptionLang: cfg.CaptionLang,
	})
	authSvc := service.NewAuthService(store, cfg.AuthSecret)
	settingsSvc := service.NewSettingsService(store, store)

	server := HTTPAdapter.NewServer(authSvc, videoSvc, settingsSvc, cfg.MaxUploadSizeMB)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Periodic sweep of work files left behind by crashed runs
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				videoSvc.CleanupStale(24 * time.Hour)
			case <-rootCtx.Done():
				return
			}
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 30 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info.Printf("received %s, shutting down", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("http shutdown error: %v", err)
		}

		rootCancel()
		logger.Info.Printf("shutdown complete")
	}()

	logger.Info.Printf("server listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error.Printf("server failed: %v", err)
		os.Exit(1)
	}
}

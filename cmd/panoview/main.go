// Package main is the entry point for the Panoview panorama viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/panoview/internal/config"
	"github.com/Faultbox/panoview/internal/logger"
	"github.com/Faultbox/panoview/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Panoview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if cfg.Media.Panorama == "" {
		path, err := pickPanorama()
		if err != nil {
			logger.Error("no panorama to show", zap.Error(err))
			os.Exit(1)
		}
		cfg.Media.Panorama = path
	}

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		v.Close()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// pickPanorama asks for an image when none was configured.
func pickPanorama() (string, error) {
	path, err := dialog.File().
		Filter("Panorama images", "jpg", "jpeg", "png", "bmp", "webp").
		Title("Open panorama").
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", errors.New("selection cancelled")
	}
	if err != nil {
		return "", fmt.Errorf("file dialog: %w", err)
	}
	return path, nil
}

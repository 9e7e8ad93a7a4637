package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	resizerapp "image-resizer/internal/app"
	"image-resizer/internal/config"
	"image-resizer/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func run() error {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	appLogger := newLogger(cfg)
	appLogger.Info("Main", "configuration loaded", map[string]interface{}{
		"file":  loader.ConfigFile(),
		"mode":  string(cfg.Mode),
		"level": appLogger.Level().String(),
	})

	loader.Watch(func(updated *config.Config, err error) {
		if err != nil {
			appLogger.Error("Main", err, map[string]interface{}{"file": loader.ConfigFile()})
			return
		}
		level, err := logger.ParseLevel(updated.LogLevel)
		if err != nil {
			appLogger.Warning("Main", "ignoring invalid log level", map[string]interface{}{"level": updated.LogLevel})
			return
		}
		appLogger.SetLevel(level)
		appLogger.Info("Main", "log level updated", map[string]interface{}{"level": level.String()})
	})

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fyneApp := app.NewWithID(resizerapp.AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      resizerapp.AppID,
		Name:    resizerapp.AppName,
		Version: resizerapp.AppVersion,
	})

	application, err := resizerapp.NewApplication(fyneApp, cfg, appLogger, home)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			appLogger.Info("Main", "signal received, shutting down", nil)
			application.Quit()
		case <-done:
		}
		return nil
	})

	runErr := application.Run(ctx)
	close(done)
	_ = g.Wait()

	appLogger.Info("Main", "application terminated", nil)
	return runErr
}

func newLogger(cfg *config.Config) *logger.ZerologAdapter {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logger.InfoLevel
	}

	if cfg.IsDevelopment() {
		return logger.NewConsoleLogger(level)
	}
	return logger.NewJSONLogger(level)
}

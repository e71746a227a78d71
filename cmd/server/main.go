// Package main is the entry point for the gallery API server.
//
// main stays minimal. Its job is to:
//  1. Load configuration (environment, optional .env)
//  2. Build the ambient dependencies (logger, auth, object storage)
//  3. Hand them to internal/server and block until shutdown
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/couple-gallery/internal/auth"
	"github.com/sakif/couple-gallery/internal/config"
	"github.com/sakif/couple-gallery/internal/logger"
	"github.com/sakif/couple-gallery/internal/server"
)

func main() {
	// === 1. CONFIGURATION ===
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. LOGGING ===
	log, err := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		slog.Error("invalid logger configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.SetDefault(log)

	// === 3. DATABASE DIRECTORY ===
	// os.MkdirAll is `mkdir -p`. Skipped for in-memory databases.
	if cfg.DBPath != ":memory:" {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			log.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// === 4. AUTH ===
	passwords, err := auth.NewPasswordService(cfg.AdminPassword, cfg.AdminPasswordHash, auth.WithCost(cfg.BcryptCost))
	if err != nil {
		log.Error("invalid admin password configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	secret := cfg.JWTSecret
	if secret == "" {
		log.Warn("JWT_SECRET not set; using a random secret, admin tokens will not survive a restart")
		secret = auth.RandomSecret()
	}
	tokens, err := auth.NewTokenService(secret, cfg.TokenTTL)
	if err != nil {
		log.Error("invalid token configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 5. OBJECT STORAGE ===
	// Optional: without it the server runs and uploads answer 500.
	store, err := newObjectStore(context.Background(), cfg.Storage)
	if err != nil {
		log.Error("failed to configure object storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if store == nil {
		log.Warn("STORAGE_DRIVER not set; image uploads are disabled")
	} else {
		log.Info("object storage configured",
			slog.String("driver", cfg.Storage.Driver),
			slog.String("bucket", cfg.Storage.Bucket),
		)
	}

	// === 6. SERVER ===
	srv, err := server.New(server.Config{
		Port:               cfg.Port,
		DBPath:             cfg.DBPath,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		UploadMaxBytes:     cfg.UploadMaxBytes,
	}, log, server.Deps{
		Passwords: passwords,
		Tokens:    tokens,
		Store:     store,
	})
	if err != nil {
		log.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		log.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

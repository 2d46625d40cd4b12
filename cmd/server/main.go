// Package main is the entry point for the DoraWi API server.
//
// main reads configuration from the environment, builds the logger, and
// hands everything to internal/server. All actual logic lives in the
// imported packages.
//
// Environment:
//
//	PORT            listen port (default 8080)
//	DB_PATH         sqlite database file (default data/dorawi.db);
//	                if the database cannot be opened the server falls
//	                back to an in-memory store
//	JWT_SECRET      token signing secret, required, at least 16 chars
//	                (e.g. JWT_SECRET=$(openssl rand -hex 32))
//	GEMINI_API_KEY  upstream model key; optional, translation endpoint
//	                is unavailable without it
//	GEMINI_MODEL    model name override (default gemini-2.5-flash)
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rahulbhardwaj/dorawi/internal/server"
	"github.com/rahulbhardwaj/dorawi/internal/translate"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/dorawi.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	// A failed mkdir is not fatal: the sqlite open will fail and the
	// server falls back to the in-memory store.
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Warn("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = translate.DefaultModel
	}

	cfg := server.Config{
		Port:         port,
		DBPath:       dbPath,
		JWTSecret:    jwtSecret,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  geminiModel,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/emretknc/driveaway/internal/connect"
	"github.com/emretknc/driveaway/internal/models"
	"github.com/emretknc/driveaway/internal/seed"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := connect.MongoClient(ctx)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := connect.MongoDBDisconnect(); err != nil {
			logger.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	repo := models.MongodbNewRepo(client)
	if err := repo.EnsureViewIndexes(ctx); err != nil {
		logger.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}
	if err := repo.EnsureBookingIndexes(ctx); err != nil {
		logger.Error("Failed to ensure booking indexes", "error", err)
		os.Exit(1)
	}

	if err := seed.Run(ctx, repo, logger); err != nil {
		logger.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

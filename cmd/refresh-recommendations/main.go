package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/averyhn/shelfrate/internal/app"
	"github.com/averyhn/shelfrate/internal/command"
	"github.com/averyhn/shelfrate/internal/datasources/mysql"
	"github.com/averyhn/shelfrate/internal/datasources/pinecone"
	"github.com/averyhn/shelfrate/internal/domain"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx := context.Background()

	logLevel := slog.LevelInfo
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := logLevel.UnmarshalText([]byte(lvl)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL: %s\n", lvl)
			os.Exit(1)
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	ctx = domain.ContextWithLogger(ctx, logger)

	if err := run(ctx); err != nil {
		logger.ErrorContext(ctx, "recommendation refresh failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "recommendation refresh completed successfully")
}

func run(ctx context.Context) error {
	mysqlURI := os.Getenv("MYSQL_URI")
	if mysqlURI == "" {
		return fmt.Errorf("MYSQL_URI environment variable is required")
	}

	db, err := mysql.Connect(ctx, mysqlURI)
	if err != nil {
		return fmt.Errorf("connecting to MySQL: %w", err)
	}
	defer func() { _ = db.Close() }()

	library := mysql.New(db)

	pineconeAPIKey := os.Getenv("PINECONE_API_KEY")
	pineconeIndexName := os.Getenv("PINECONE_INDEX_NAME")

	if pineconeAPIKey == "" || pineconeIndexName == "" {
		return fmt.Errorf("PINECONE_API_KEY and PINECONE_INDEX_NAME environment variables are required")
	}

	pineconeClient, err := pinecone.NewClient(ctx, pineconeAPIKey, pineconeIndexName)
	if err != nil {
		return fmt.Errorf("connecting to Pinecone: %w", err)
	}

	//nolint:gosec // weak random is fine for clustering
	clusterRng := rand.New(rand.NewSource(0))
	updateClustersCmd := command.NewUpdateTasteClusters(
		library,
		library,
		domain.DefaultTasteClusterConfig(),
		clusterRng,
	)

	generateCmd := command.NewGenerateRecommendations(
		pineconeClient,
		library,
		library,
		library,
		app.DefaultGenerateRecommendationsConfig(),
	)

	runCmd := command.NewRunRecommendationRefresh(
		updateClustersCmd,
		generateCmd,
		library,
		library,
		app.DefaultRunRecommendationRefreshConfig(),
	)

	_, err = runCmd.Execute(ctx, command.RunRecommendationRefreshRequest{})
	return err
}

package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/averyhn/shelfrate/internal/command"
	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/datasources/mysql"
	"github.com/averyhn/shelfrate/internal/datasources/pinecone"
	"github.com/averyhn/shelfrate/internal/datasources/voyageai"
	"github.com/averyhn/shelfrate/internal/transport/web/router"
	"github.com/averyhn/shelfrate/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	library, err := setupLibraryRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up library repository: %w", err)
	}

	similarity, err := setupSimilarityRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up similarity repository: %w", err)
	}

	embedder, err := setupEmbedder(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up embedder: %w", err)
	}

	authMiddleware, err := setupAuthMiddleware(ctx, library)
	if err != nil {
		return nil, fmt.Errorf("setting up auth middleware: %w", err)
	}

	generateRecommendationsCmd := command.NewGenerateRecommendations(
		similarity,
		library,
		library,
		library,
		DefaultGenerateRecommendationsConfig(),
	)

	commands := router.Commands{
		SubmitRating:         command.NewSubmitRating(similarity, library, library),
		SetCriteriaOrder:     command.NewSetCriteriaOrder(library),
		ComputeCompatibility: command.NewComputeCompatibility(library, library, library, library),
		RecommendBooks: command.NewRecommendBooks(
			generateRecommendationsCmd,
			library,
			library,
			DefaultRecommendBooksConfig(),
		),
		CreateAPIToken: command.NewCreateAPIToken(library, library),
	}

	httpRouter, err := router.MakeRouter(
		library,
		similarity,
		embedder,
		commands,
		MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_NAME"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_EMAIL"),
		MustGetEnvAsDuration(ctx, "LATEST_CACHE_MAX_AGE"),
		authMiddleware,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	return []Component{
		&server.Server{
			TLSDisabled:      MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED"),
			TLSDisabledPort:  MustGetEnvAsInt(ctx, "PORT"),
			AutocertHostname: MustGetEnvAsString(ctx, "HTTP_AUTOCERT_HOSTNAME"),
			Router:           httpRouter,
		},
	}, nil
}

func setupLibraryRepository(ctx context.Context) (datasources.LibraryRepository, error) {
	db, err := mysql.Connect(ctx, MustGetEnvAsString(ctx, "MYSQL_URI"))
	if err != nil {
		return nil, fmt.Errorf("connecting to MySQL: %w", err)
	}
	return mysql.New(db), nil
}

func setupSimilarityRepository(ctx context.Context) (datasources.SimilarityRepository, error) {
	switch driver := MustGetEnvAsString(ctx, "SIMILARITY_DRIVER"); driver {
	case "null":
		return datasources.NullSimilarityRepository{}, nil
	case "pinecone":
		client, err := pinecone.NewClient(
			ctx,
			MustGetEnvAsString(ctx, "PINECONE_API_KEY"),
			MustGetEnvAsString(ctx, "PINECONE_INDEX_NAME"),
		)
		if err != nil {
			return nil, fmt.Errorf("connecting to pinecone: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown similarity driver [%s]", driver)
	}
}

func setupEmbedder(ctx context.Context) (datasources.Embedder, error) {
	switch driver := MustGetEnvAsString(ctx, "EMBEDDER_DRIVER"); driver {
	case "null":
		return datasources.NullEmbedder{}, nil
	case "voyageai":
		return voyageai.NewClient(
			MustGetEnvAsString(ctx, "VOYAGE_API_KEY"),
			MustGetEnvAsString(ctx, "VOYAGE_MODEL"),
		), nil
	default:
		return nil, fmt.Errorf("unknown embedder driver [%s]", driver)
	}
}

func setupAuthMiddleware(
	ctx context.Context, library datasources.LibraryRepository,
) (func(http.Handler) http.Handler, error) {
	var validators []router.AuthValidator

	for _, driver := range MustGetEnvAsStrings(ctx, "AUTH_DRIVERS") {
		switch driver {
		case "":
			// Skip empty strings (e.g., from splitting an empty AUTH_DRIVERS)
		case "auth0":
			v, err := router.NewAuth0Validator(
				MustGetEnvAsString(ctx, "AUTH0_DOMAIN"),
				MustGetEnvAsString(ctx, "AUTH0_AUDIENCE"),
			)
			if err != nil {
				return nil, fmt.Errorf("creating Auth0 validator: %w", err)
			}
			validators = append(validators, v)
		case "api_token":
			validators = append(validators, router.NewAPITokenValidator(ctx, library, library))
		default:
			return nil, fmt.Errorf("unknown auth driver [%s]", driver)
		}
	}

	return router.NewAuthMiddleware(validators), nil
}

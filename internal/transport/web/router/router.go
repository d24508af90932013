package router

import (
	"net/http"
	"time"

	"github.com/averyhn/shelfrate/internal/command"
	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/averyhn/shelfrate/internal/transport/web/controller"
	"github.com/gorilla/mux"
)

// Commands groups the use-case commands the HTTP surface depends on.
type Commands struct {
	SubmitRating         command.Command[command.SubmitRatingRequest, command.Empty]
	SetCriteriaOrder     command.Command[command.SetCriteriaOrderRequest, command.Empty]
	ComputeCompatibility command.Command[command.ComputeCompatibilityRequest, domain.CompatibilityResult]
	RecommendBooks       command.Command[command.RecommendBooksRequest, []domain.Book]
	CreateAPIToken       *command.CreateAPIToken
}

func MakeRouter(
	library datasources.LibraryRepository,
	similarity datasources.SimilarityRepository,
	embedder datasources.Embedder,
	commands Commands,
	rssFeedBaseURL, rssFeedAuthorName, rssFeedAuthorEmail string,
	latestCacheMaxAge time.Duration,
	authMiddleware func(http.Handler) http.Handler,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(authMiddleware)

	r.Handle("/v1/books", controller.BooksList{
		Lister:      library,
		CacheMaxAge: latestCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/books/recommended", requireAuthMiddleware(controller.RecommendedBooksList{
		Command: commands.RecommendBooks,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/books/{book_id}", controller.BookGet{
		Fetcher:     library,
		CacheMaxAge: latestCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/books/{book_id}/ratings", controller.BookRatingsList{
		RatingsLister: library,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/books/{book_id}/ratings", requireAuthMiddleware(controller.RatingSubmit{
		Fetcher:   library,
		SubmitCmd: commands.SubmitRating,
	})).Methods(http.MethodPost)

	r.Handle("/v1/books/{book_id}/profile", controller.BookProfileGet{
		RatingsLister: library,
		OrderGetter:   library,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/books/{book_id}/similar", controller.SimilarBooksList{
		Fetcher:     library,
		Similarity:  similarity,
		CacheMaxAge: 0,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/authors/{author_id}/profile", controller.AuthorProfileGet{
		RatingsLister: library,
		OrderGetter:   library,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/authors/{author_id}/compatibility", requireAuthMiddleware(
		controller.AuthorCompatibilityGet{
			Command: commands.ComputeCompatibility,
		})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/readers/me/criteria", requireAuthMiddleware(controller.CriteriaOrderGet{
		OrderGetter: library,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/readers/me/criteria", requireAuthMiddleware(controller.CriteriaOrderSet{
		SetCmd: commands.SetCriteriaOrder,
	})).Methods(http.MethodPut)

	r.Handle("/v1/search/reviews", controller.ReviewSearch{
		Embedder:   embedder,
		Similarity: similarity,
		Fetcher:    library,
	}).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/tokens", requireAuthMiddleware(controller.APITokenCreate{
		CreateCmd: commands.CreateAPIToken,
	})).Methods(http.MethodPost)

	r.Handle("/v1/tokens", requireAuthMiddleware(controller.APITokenList{
		TokenLister: library,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/tokens/{token_id}", requireAuthMiddleware(controller.APITokenRevoke{
		TokenRevoker: library,
	})).Methods(http.MethodDelete, http.MethodOptions)

	r.Handle("/rss", controller.RSS{
		FeedHostname:    rssFeedBaseURL,
		FeedPath:        "/rss",
		FeedAuthorName:  rssFeedAuthorName,
		FeedAuthorEmail: rssFeedAuthorEmail,
		Reviews:         library,
		CacheMaxAge:     latestCacheMaxAge,
	})

	return r, nil
}

package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
)

type BooksList struct {
	Lister interface {
		datasources.LatestBookLister
		datasources.BookFetcher
	}
	CacheMaxAge time.Duration
}

type BooksListResponse struct {
	Data     []domain.Book     `json:"data"`
	Metadata BooksListMetadata `json:"metadata"`
}

type BooksListMetadata struct{}

func (c BooksList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filters, err := bookFiltersFromQuery(r.URL.Query())
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to parse book filters in query string", "error", err)

		w.WriteHeader(http.StatusBadRequest)
		return
	}

	options, err := listOptionsFromQuery(r.URL.Query())
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to parse book list options in query string", "error", err)

		w.WriteHeader(http.StatusBadRequest)
		return
	}

	bookIDs, err := c.Lister.ListLatestBookIDs(r.Context(), filters, options)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch book IDs", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	books, err := c.Lister.FetchBooksByID(r.Context(), bookIDs)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch book metadata", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if books == nil {
		books = []domain.Book{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if err := json.NewEncoder(w).Encode(BooksListResponse{
		Data:     books,
		Metadata: BooksListMetadata{},
	}); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write books to response", "error", err)
	}
}

func bookFiltersFromQuery(q url.Values) (domain.BookFilters, error) {
	var filters domain.BookFilters

	if q.Has("only_authors") {
		filters.OnlyAuthors = strings.Split(q.Get("only_authors"), ",")
	}

	if q.Has("except_authors") {
		filters.ExceptAuthors = strings.Split(q.Get("except_authors"), ",")
	}

	return filters, nil
}

func listOptionsFromQuery(q url.Values) (domain.BookListOptions, error) {
	var options domain.BookListOptions
	if q.Has("page") {
		page, err := strconv.ParseInt(q.Get("page"), 10, 32)
		if err != nil {
			return domain.BookListOptions{}, fmt.Errorf("unable to parse page from query: %w", err)
		}
		if page < 1 {
			return domain.BookListOptions{}, fmt.Errorf("invalid page value [%d]", page)
		}
		options.Page = int(page)
	} else {
		options.Page = 1
	}

	if q.Has("page_size") {
		pageSize, err := strconv.ParseInt(q.Get("page_size"), 10, 32)
		if err != nil {
			return domain.BookListOptions{}, fmt.Errorf("unable to parse page size from query: %w", err)
		}
		if pageSizeLimit := int64(200); pageSize > pageSizeLimit {
			return domain.BookListOptions{}, fmt.Errorf("page size [%d] exceeds limit [%d]",
				pageSize, pageSizeLimit)
		}
		options.PageSize = int(pageSize)
	} else {
		options.PageSize = 100
	}

	if q.Has("sort") {
		orderings := strings.Split(q.Get("sort"), ",")

		for _, ordering := range orderings {
			field := ordering
			desc := false
			if strings.HasSuffix(ordering, "_desc") {
				field = ordering[:len(ordering)-5]
				desc = true
			}

			if !slices.Contains(domain.ValidOrderingFields, domain.BookOrderingField(field)) {
				return domain.BookListOptions{}, fmt.Errorf("unrecognised book ordering field: %s", field)
			}

			options.Ordering = append(options.Ordering, domain.BookOrdering{
				Field: domain.BookOrderingField(field),
				Desc:  desc,
			})
		}
	}

	return options, nil
}

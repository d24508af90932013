package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/gorilla/feeds"
)

// rssFeedLimit is how many recent reviews the feed carries.
const rssFeedLimit = 50

type RSS struct {
	FeedHostname    string
	FeedPath        string
	FeedAuthorName  string
	FeedAuthorEmail string
	Reviews         datasources.RecentReviewsLister
	CacheMaxAge     time.Duration
}

func (c RSS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	feed := &feeds.Feed{
		Title:       "Shelfrate Recent Reviews",
		Link:        &feeds.Link{Href: c.FeedHostname + c.FeedPath},
		Description: "Feed of written reviews recently posted to shelfrate",
		Author:      &feeds.Author{Name: c.FeedAuthorName, Email: c.FeedAuthorEmail},
		Created:     time.Now(),
	}

	reviews, err := c.Reviews.ListRecentReviews(ctx, rssFeedLimit)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch reviews for feed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	for _, review := range reviews {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          review.RaterID + "/" + review.BookID,
			IsPermaLink: "false",
			Title: fmt.Sprintf("%s by %s rated %.1f/5",
				review.BookTitle, review.AuthorName, review.OverallStraight),
			Link:        &feeds.Link{Href: c.FeedHostname + "/v1/books/" + review.BookID},
			Description: review.Review,
			Author: &feeds.Author{
				Name: review.RaterID,
			},
			Created: review.CreatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		logger.ErrorContext(ctx, "unable to format feed as RSS", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if _, err := w.Write([]byte(rss)); err != nil {
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}

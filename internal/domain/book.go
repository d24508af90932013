package domain

import (
	"time"
)

// Book is one catalogue entry. AuthorID groups the books whose ratings make
// up an author's aggregate profile.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	BlurbStart  string    `json:"blurb_start"`
	PublishedAt time.Time `json:"published_at"`
}

type BookFilters struct {
	OnlyAuthors   []string
	ExceptAuthors []string
}

type BookListOptions struct {
	Ordering       []BookOrdering
	Page, PageSize int
}

type BookOrdering struct {
	Field BookOrderingField
	Desc  bool
}

type BookOrderingField string

const BookOrderingFieldPublishedAt BookOrderingField = "published_at"
const BookOrderingFieldAuthorName BookOrderingField = "author_name"
const BookOrderingFieldTitle BookOrderingField = "title"

var ValidOrderingFields = []BookOrderingField{
	BookOrderingFieldPublishedAt,
	BookOrderingFieldAuthorName,
	BookOrderingFieldTitle,
}

// SimilarBook is a book surfaced by review-embedding similarity, with the
// similarity score from the vector index.
type SimilarBook struct {
	BookID string  `json:"book_id"`
	Score  float64 `json:"score"`
}

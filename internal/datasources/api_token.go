package datasources

import (
	"context"
	"errors"
	"time"

	"github.com/averyhn/shelfrate/internal/domain"
)

// ErrAPITokenNotFound is returned when no matching token exists.
var ErrAPITokenNotFound = errors.New("API token not found")

// APITokenCreator creates a new API token.
type APITokenCreator interface {
	CreateAPIToken(
		ctx context.Context,
		id, readerID, tokenHash, tokenPrefix string,
		name *string,
		expiresAt *time.Time,
	) error
}

// APITokenByHashGetter retrieves an API token by its hash.
type APITokenByHashGetter interface {
	GetAPITokenByHash(ctx context.Context, tokenHash string) (domain.APIToken, error)
}

// APITokenLastUsedUpdater updates the last_used_at timestamp for a token.
type APITokenLastUsedUpdater interface {
	UpdateAPITokenLastUsed(ctx context.Context, tokenID string) error
}

// ReaderAPITokenLister lists all tokens for a reader.
type ReaderAPITokenLister interface {
	ListReaderAPITokens(ctx context.Context, readerID string) ([]domain.APIToken, error)
}

// ReaderAPITokenCounter counts active tokens for a reader.
type ReaderAPITokenCounter interface {
	CountReaderActiveAPITokens(ctx context.Context, readerID string) (int64, error)
}

// APITokenRevoker revokes a token.
type APITokenRevoker interface {
	RevokeAPIToken(ctx context.Context, tokenID, readerID string) error
}

// APITokenRepository combines all API token operations.
type APITokenRepository interface {
	APITokenCreator
	APITokenByHashGetter
	APITokenLastUsedUpdater
	ReaderAPITokenLister
	ReaderAPITokenCounter
	APITokenRevoker
}

package command

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/google/uuid"
)

// MaxAPITokensPerReader is the maximum number of active tokens a reader can have.
const MaxAPITokensPerReader = 10

// ErrTokenLimitExceeded is returned when a reader has reached the maximum number of active tokens.
var ErrTokenLimitExceeded = errors.New("reader has reached maximum number of active tokens")

// APITokenPrefix is the prefix for API tokens in the Authorization header.
const APITokenPrefix = "user_api|"

// CreateAPITokenRequest is the request for the CreateAPIToken command.
type CreateAPITokenRequest struct {
	ReaderID string
	Name     *string
}

// CreateAPITokenResponse is the response from the CreateAPIToken command.
type CreateAPITokenResponse struct {
	TokenID   string
	FullToken string
	Prefix    string
}

// CreateAPIToken handles creating new API tokens.
type CreateAPIToken struct {
	TokenCounter datasources.ReaderAPITokenCounter
	TokenCreator datasources.APITokenCreator
}

// NewCreateAPIToken creates a properly initialized CreateAPIToken command.
func NewCreateAPIToken(
	tokenCounter datasources.ReaderAPITokenCounter,
	tokenCreator datasources.APITokenCreator,
) *CreateAPIToken {
	return &CreateAPIToken{
		TokenCounter: tokenCounter,
		TokenCreator: tokenCreator,
	}
}

// Execute creates a new API token for the reader.
func (c *CreateAPIToken) Execute(ctx context.Context, req CreateAPITokenRequest) (CreateAPITokenResponse, error) {
	count, err := c.TokenCounter.CountReaderActiveAPITokens(ctx, req.ReaderID)
	if err != nil {
		return CreateAPITokenResponse{}, fmt.Errorf("counting reader tokens: %w", err)
	}

	if count >= MaxAPITokensPerReader {
		return CreateAPITokenResponse{}, ErrTokenLimitExceeded
	}

	// 32 random bytes = 64 hex chars; only the SHA256 hash is stored.
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return CreateAPITokenResponse{}, fmt.Errorf("generating random token: %w", err)
	}

	tokenHex := hex.EncodeToString(tokenBytes)
	fullToken := APITokenPrefix + tokenHex

	hash := sha256.Sum256([]byte(fullToken))
	tokenHash := hex.EncodeToString(hash[:])

	tokenPrefix := tokenHex[:8]

	tokenID := uuid.New().String()

	if err := c.TokenCreator.CreateAPIToken(ctx, tokenID, req.ReaderID, tokenHash, tokenPrefix, req.Name, nil); err != nil {
		return CreateAPITokenResponse{}, fmt.Errorf("creating token: %w", err)
	}

	return CreateAPITokenResponse{
		TokenID:   tokenID,
		FullToken: fullToken,
		Prefix:    tokenPrefix,
	}, nil
}

package controller

import (
	"errors"
	"net/http"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/gorilla/mux"
)

// APITokenRevoke handles DELETE /v1/tokens/{token_id} to revoke a token.
type APITokenRevoke struct {
	TokenRevoker datasources.APITokenRevoker
}

func (c APITokenRevoke) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	readerID := domain.ReaderIDFromContext(ctx)
	if readerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	tokenID := vars["token_id"]
	if tokenID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := c.TokenRevoker.RevokeAPIToken(ctx, tokenID, readerID); err != nil {
		if errors.Is(err, datasources.ErrAPITokenNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to revoke API token", "error", err, "token_id", tokenID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package controller

import (
	"encoding/json"
	"net/http"

	"github.com/averyhn/shelfrate/internal/domain"
)

// writeValidationError renders a caller mistake as a 400 with a JSON body.
// Encoding failures are swallowed; the status line has already been sent.
func writeValidationError(w http.ResponseWriter, err domain.ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	})
}

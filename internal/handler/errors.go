package handler

import (
	"errors"
	"net/http"

	"github.com/dmelim/local-character-sheets/internal/domain"
	"github.com/dmelim/local-character-sheets/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Version conflicts
// carry the stored version so clients can reconcile without a second round
// trip. Anything without an HTTP mapping is an environment problem and
// surfaces as a 500.
func (h *CharacterHandler) handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.VersionConflictError
	if errors.As(err, &conflictErr) {
		httputil.RespondErrorWithExtras(w, conflictErr.StatusCode(), conflictErr.Error(), map[string]interface{}{
			"currentVersion": conflictErr.Current,
		})
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	h.logger.Error("request failed", "error", err)
	httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
}

package server

import (
	"net/http"

	apperrors "github.com/lingogate/lingogate/internal/errors"
)

// HandleError is the single path every router-level error takes to the
// wire. Handlers call the errors package directly; the router's 404 and
// 405 fallbacks come through here.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	apperrors.RespondWithError(w, r, err)
}

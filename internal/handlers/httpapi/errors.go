package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/apiarylab/swarmtrack/internal/services/alerting"
	"github.com/apiarylab/swarmtrack/internal/services/introduction"
	"github.com/apiarylab/swarmtrack/internal/services/registry"
	"github.com/apiarylab/swarmtrack/internal/services/session"
	"github.com/apiarylab/swarmtrack/internal/services/stats"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// statusKinds maps service sentinels to an HTTP status and a stable machine
// kind. Anything unmapped is an internal error and is not leaked to clients.
var statusKinds = []struct {
	err    error
	status int
	kind   string
}{
	{session.ErrSiteNotFound, http.StatusNotFound, "not_found"},
	{session.ErrSessionNotFound, http.StatusNotFound, "not_found"},
	{registry.ErrHiveNotFound, http.StatusNotFound, "not_found"},
	{registry.ErrColonyNotFound, http.StatusNotFound, "not_found"},
	{introduction.ErrSessionNotFound, http.StatusNotFound, "not_found"},
	{introduction.ErrColonyNotFound, http.StatusNotFound, "not_found"},
	{stats.ErrSessionNotFound, http.StatusNotFound, "not_found"},
	{stats.ErrSiteNotFound, http.StatusNotFound, "not_found"},

	{session.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
	{registry.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
	{introduction.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
	{alerting.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
	{stats.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},

	{session.ErrAlreadyClosed, http.StatusConflict, "already_closed"},
	{registry.ErrInvalidSession, http.StatusConflict, "invalid_session"},
	{registry.ErrHiveAlreadyRegistered, http.StatusConflict, "already_registered"},
	{introduction.ErrNoPendingColonies, http.StatusConflict, "no_pending_colonies"},
	{introduction.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{session.ErrConflict, http.StatusConflict, "conflict"},
	{introduction.ErrConflict, http.StatusConflict, "conflict"},
	{alerting.ErrConflict, http.StatusConflict, "conflict"},
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	for _, m := range statusKinds {
		if errors.Is(err, m.err) {
			writeJSON(w, m.status, errorResponse{Error: m.err.Error(), Kind: m.kind})
			return
		}
	}

	s.logger.Error("unhandled service error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: "internal error",
		Kind:  "internal",
	})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Kind: "invalid_argument"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

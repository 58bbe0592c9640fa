package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/imagepair/internal/failure"
	"github.com/lehigh-university-libraries/imagepair/internal/models"
	"github.com/lehigh-university-libraries/imagepair/internal/pairing"
	"github.com/lehigh-university-libraries/imagepair/internal/storage"
)

type Handler struct {
	sessionStore *storage.SessionStore
}

// OperationResponse is returned by every slot, combine and validate call.
type OperationResponse struct {
	SessionID string               `json:"session_id,omitempty"`
	Status    models.Status        `json:"status"`
	Width     string               `json:"width,omitempty"`
	Height    string               `json:"height,omitempty"`
	Output    string               `json:"output,omitempty"`
	Valid     *bool                `json:"valid,omitempty"`
	Pair      *models.PairSnapshot `json:"pair,omitempty"`
}

// New returns a Handler whose sessions are built by newState. A nil newState
// uses pairing defaults.
func New(newState func() *pairing.State) *Handler {
	return &Handler{
		sessionStore: storage.New(newState),
	}
}

// Routes registers the API on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/sessions", h.HandleSessions)
	mux.HandleFunc("/api/sessions/", h.HandleSessionDetail)
	mux.HandleFunc("/api/validate/file", h.HandleValidateFile)
	mux.HandleFunc("/api/validate/dimensions", h.HandleValidateDimensions)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, http.StatusOK, data)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// writeFailure reports a pairing failure as an error status the UI can show.
func (h *Handler) writeFailure(w http.ResponseWriter, resp OperationResponse, err error) {
	resp.Status = models.StatusFromError(err)
	code := statusCodeFor(err)
	if code >= http.StatusInternalServerError {
		slog.Error("Operation failed", "session_id", resp.SessionID, "kind", failure.KindOf(err).String(), "err", err)
	} else {
		slog.Info("Operation rejected", "session_id", resp.SessionID, "kind", failure.KindOf(err).String(), "err", err)
	}
	h.writeJSONStatus(w, code, resp)
}

func statusCodeFor(err error) int {
	switch failure.KindOf(err) {
	case failure.KindEncodeOrWrite, failure.KindUnknown:
		return http.StatusInternalServerError
	case failure.KindNoReferenceDimensions, failure.KindMissingImage:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*storage.Session, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

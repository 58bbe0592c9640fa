package handlers

import (
	"net/http"

	"github.com/lehigh-university-libraries/imagepair/internal/pairing"
	"github.com/lehigh-university-libraries/imagepair/internal/storage"
)

// handleOutput serves the session's most recent composite. Only paths the
// session itself wrote are ever served.
func (h *Handler) handleOutput(w http.ResponseWriter, r *http.Request, session *storage.Session) {
	var out string
	session.Do(func(state *pairing.State) {
		out = state.LastOutput()
	})
	if out == "" {
		h.writeError(w, "No combined image yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	http.ServeFile(w, r, out)
}

package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/imagepair/internal/models"
)

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		sessions := h.sessionStore.GetAll()
		sessionList := make([]models.PairSnapshot, 0, len(sessions))
		for _, session := range sessions {
			sessionList = append(sessionList, session.Snapshot())
		}
		sort.Slice(sessionList, func(i, j int) bool {
			return sessionList[i].CreatedAt.Before(sessionList[j].CreatedAt)
		})
		h.writeJSON(w, sessionList)
	case "POST":
		session := h.sessionStore.Create()
		slog.Info("Session created", "session_id", session.ID)
		snap := session.Snapshot()
		h.writeJSONStatus(w, http.StatusCreated, OperationResponse{
			SessionID: session.ID,
			Status:    models.Info("Select the first image"),
			Pair:      &snap,
		})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSessionDetail routes /api/sessions/{id} and its operations.
func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/sessions/"), "/")
	sessionID, action, _ := strings.Cut(rest, "/")
	if sessionID == "" {
		h.writeError(w, "Session id is required", http.StatusBadRequest)
		return
	}

	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	switch action {
	case "":
		switch r.Method {
		case "GET":
			h.writeJSON(w, session.Snapshot())
		case "DELETE":
			h.sessionStore.Delete(sessionID)
			slog.Info("Session deleted", "session_id", sessionID)
			w.WriteHeader(http.StatusNoContent)
		default:
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case "slot-a", "slot-b":
		if r.Method != "POST" {
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleSetSlot(w, r, session, action)
	case "combine":
		if r.Method != "POST" {
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleCombine(w, r, session)
	case "output":
		if r.Method != "GET" {
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleOutput(w, r, session)
	default:
		h.writeError(w, "Unknown session operation: "+action, http.StatusNotFound)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lehigh-university-libraries/imagepair/internal/models"
	"github.com/lehigh-university-libraries/imagepair/internal/pairing"
	"github.com/lehigh-university-libraries/imagepair/internal/storage"
)

type slotRequest struct {
	Path string `json:"path"`
	// Drop is a raw drag-and-drop payload, used when Path is empty.
	Drop string `json:"drop"`
}

type combineRequest struct {
	Width  string `json:"width"`
	Height string `json:"height"`
}

func (h *Handler) handleSetSlot(w http.ResponseWriter, r *http.Request, session *storage.Session, slot string) {
	var request slotRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	path := request.Path
	if path == "" && request.Drop != "" {
		path = NormalizeDropPath(request.Drop)
	}
	if path == "" {
		h.writeError(w, "path or drop is required", http.StatusBadRequest)
		return
	}

	resp := OperationResponse{SessionID: session.ID}
	var (
		dims models.Dimensions
		err  error
	)
	session.Do(func(state *pairing.State) {
		if slot == "slot-a" {
			dims, err = state.SetSlotA(path)
		} else {
			dims, err = state.SetSlotB(path)
		}
		snap := state.Snapshot()
		snap.ID = session.ID
		resp.Pair = &snap
		resp.Width, resp.Height = snap.Width, snap.Height
	})

	if err != nil {
		h.writeFailure(w, resp, err)
		return
	}

	if slot == "slot-a" {
		resp.Status = models.Success(fmt.Sprintf("Set dimensions: %dx%d", dims.Width, dims.Height))
	} else {
		resp.Status = models.Success(fmt.Sprintf("Second image height matches: %d pixels", dims.Height))
	}
	h.writeJSON(w, resp)
}

func (h *Handler) handleCombine(w http.ResponseWriter, r *http.Request, session *storage.Session) {
	// an empty body means "use the locked dimensions"
	var request combineRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp := OperationResponse{SessionID: session.ID}
	var (
		out string
		err error
	)
	session.Do(func(state *pairing.State) {
		out, err = state.Combine(request.Width, request.Height)
		snap := state.Snapshot()
		snap.ID = session.ID
		resp.Pair = &snap
		resp.Width, resp.Height = snap.Width, snap.Height
	})

	if err != nil {
		h.writeFailure(w, resp, err)
		return
	}

	resp.Output = out
	resp.Status = models.Success("Combined image saved as " + out)
	h.writeJSON(w, resp)
}

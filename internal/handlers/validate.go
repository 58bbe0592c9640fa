package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lehigh-university-libraries/imagepair/internal/failure"
	"github.com/lehigh-university-libraries/imagepair/internal/models"
	"github.com/lehigh-university-libraries/imagepair/internal/validation"
)

func (h *Handler) HandleValidateFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request slotRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	path := request.Path
	if path == "" {
		path = NormalizeDropPath(request.Drop)
	}

	valid := validation.IsValidImageFile(path)
	resp := OperationResponse{Valid: &valid, Status: models.Success("Valid image file")}
	if !valid {
		resp.Status = models.StatusFromError(failure.New(failure.KindInvalidFile, path, nil))
	}
	h.writeJSON(w, resp)
}

func (h *Handler) HandleValidateDimensions(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request combineRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	valid := validation.IsValidDimensionPair(request.Width, request.Height)
	resp := OperationResponse{Valid: &valid, Status: models.Success("Valid dimensions")}
	if !valid {
		resp.Status = models.StatusFromError(failure.New(failure.KindInvalidDimensionInput, "", nil))
	}
	h.writeJSON(w, resp)
}

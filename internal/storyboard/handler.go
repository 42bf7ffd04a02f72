package storyboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/framecraft/framecraft/internal/auth"
	"github.com/framecraft/framecraft/internal/document"
	"github.com/framecraft/framecraft/internal/timeline"
)

type Handler struct {
	service *Service

	// OnSnapshotSaved, when set, is called after a snapshot write so live
	// previews can pick up the new document.
	OnSnapshotSaved func(ctx context.Context, storyboardID string)
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name string `json:"name"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	sb, err := h.service.Create(r.Context(), req.Name, userID)
	if err != nil {
		slog.Error("create storyboard failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, sb)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	storyboardID := mux.Vars(r)["storyboardId"]

	sb, err := h.service.Get(r.Context(), storyboardID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sb)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	sbs, err := h.service.List(r.Context(), userID)
	if err != nil {
		slog.Error("list storyboards failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, sbs)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	storyboardID := mux.Vars(r)["storyboardId"]

	if err := h.service.Delete(r.Context(), storyboardID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	storyboardID := mux.Vars(r)["storyboardId"]

	doc, err := h.service.GetLatestSnapshot(r.Context(), storyboardID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

func (h *Handler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	storyboardID := mux.Vars(r)["storyboardId"]

	var doc document.Storyboard
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document"})
		return
	}

	if err := h.service.SaveSnapshot(r.Context(), storyboardID, userID, &doc); err != nil {
		handleServiceError(w, err)
		return
	}

	if h.OnSnapshotSaved != nil {
		h.OnSnapshotSaved(r.Context(), storyboardID)
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

// Resolve runs the frame-range resolution pass over the latest snapshot and
// returns every resolved range plus all warnings. Warnings are part of the
// success payload; a build with warnings is still a build.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	storyboardID := mux.Vars(r)["storyboardId"]

	result, err := h.service.Resolve(r.Context(), storyboardID, userID)
	if err != nil {
		var missing *timeline.MissingFrameRangeError
		if errors.As(err, &missing) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

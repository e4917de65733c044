// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/danielhkuo/tribedates/cascade"
	"github.com/danielhkuo/tribedates/cliparse"
	"github.com/danielhkuo/tribedates/middleware"
	"github.com/danielhkuo/tribedates/models"
	"github.com/danielhkuo/tribedates/store"
)

type TribeHandler struct {
	st  store.Store
	cfg cliparse.Config
}

func NewTribeHandler(st store.Store, cfg cliparse.Config) *TribeHandler {
	return &TribeHandler{st: st, cfg: cfg}
}

// Create handles POST /tribes
func (h *TribeHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)

	var req models.TribeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Members) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one member is required")
		return
	}

	id, err := h.st.Append(r.Context(), store.TribesPath(uid), nil)
	if err != nil {
		slog.Error("failed to allocate tribe ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create tribe")
		return
	}

	now := time.Now().UTC()
	tribe := models.Tribe{
		ID:      id,
		Name:    req.Name,
		Members: dedupeMembers(req.Members),
		Created: now,
		Updated: now,
	}
	if err := h.st.Write(r.Context(), store.TribePath(uid, id), tribe); err != nil {
		slog.Error("failed to write tribe", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create tribe")
		return
	}

	slog.Info("tribe created", "tribe_id", id, "members", len(tribe.Members))

	middleware.JSONResponse(w, http.StatusCreated, tribe)
}

// List handles GET /tribes
func (h *TribeHandler) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)

	records := map[string]models.Tribe{}
	if _, err := h.st.Read(r.Context(), store.TribesPath(uid), &records); err != nil {
		slog.Error("failed to read tribes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	tribes := make([]models.Tribe, 0, len(records))
	for id, t := range records {
		t.ID = id
		tribes = append(tribes, t)
	}
	sort.Slice(tribes, func(i, j int) bool { return tribes[i].Name < tribes[j].Name })

	middleware.JSONResponse(w, http.StatusOK, tribes)
}

// Update handles PUT /tribes/{id}
// After the tribe is written, the membership change is propagated to
// every event bound to it: responses from removed members are dropped.
// Propagation failures surface as errors; the tribe itself stays saved
// and already-updated events stay updated.
func (h *TribeHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)
	tribeID := r.PathValue("id")
	if tribeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "tribe id is required")
		return
	}

	var req models.TribeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Members) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one member is required")
		return
	}

	var tribe models.Tribe
	found, err := h.st.Read(r.Context(), store.TribePath(uid, tribeID), &tribe)
	if err != nil {
		slog.Error("failed to read tribe", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Tribe not found")
		return
	}

	tribe.ID = tribeID
	tribe.Name = req.Name
	tribe.Members = dedupeMembers(req.Members)
	tribe.Updated = time.Now().UTC()
	if err := h.st.Write(r.Context(), store.TribePath(uid, tribeID), tribe); err != nil {
		slog.Error("failed to update tribe", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update tribe")
		return
	}

	if err := cascade.PropagateTribeMembers(r.Context(), h.st, uid, tribeID, tribe.Members); err != nil {
		slog.Error("failed to propagate membership change", "error", err, "tribe_id", tribeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError,
			"Tribe saved but updating event participants failed; retry the update")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tribe)
}

// Delete handles DELETE /tribes/{id}
func (h *TribeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)
	tribeID := r.PathValue("id")
	if tribeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "tribe id is required")
		return
	}

	if err := h.st.Delete(r.Context(), store.TribePath(uid, tribeID)); err != nil {
		slog.Error("failed to delete tribe", "error", err, "tribe_id", tribeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete tribe")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func dedupeMembers(members []string) []string {
	seen := make(map[string]bool, len(members))
	out := make([]string, 0, len(members))
	for _, id := range members {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

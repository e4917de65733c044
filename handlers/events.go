// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/danielhkuo/tribedates/auth"
	"github.com/danielhkuo/tribedates/cliparse"
	"github.com/danielhkuo/tribedates/middleware"
	"github.com/danielhkuo/tribedates/models"
	"github.com/danielhkuo/tribedates/schedule"
	"github.com/danielhkuo/tribedates/store"
)

type EventHandler struct {
	st  store.Store
	cfg cliparse.Config
}

func NewEventHandler(st store.Store, cfg cliparse.Config) *EventHandler {
	return &EventHandler{st: st, cfg: cfg}
}

// Create handles POST /events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)

	var req models.EventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.TribeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "tribe_id is required")
		return
	}
	if len(req.Dates) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one date option is required")
		return
	}

	dates, err := schedule.BuildOptions(req.Dates)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.st.Append(r.Context(), store.EventsPath(uid), nil)
	if err != nil {
		slog.Error("failed to allocate event ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	ev := models.Event{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Type:         schedule.EventType(dates),
		Anonymous:    req.Anonymous,
		TribeID:      req.TribeID,
		Dates:        dates,
		Participants: map[string]models.ParticipantResponse{},
		Created:      time.Now().UTC(),
	}
	if err := h.st.Write(r.Context(), store.EventPath(uid, id), ev); err != nil {
		slog.Error("failed to write event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	slog.Info("event created", "event_id", id, "options", len(dates))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateEventResponse{
		EventID: id,
		VoteURL: auth.VoteURL(h.cfg.BaseURL, id, uid),
	})
}

// List handles GET /events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)

	records := map[string]models.Event{}
	if _, err := h.st.Read(r.Context(), store.EventsPath(uid), &records); err != nil {
		slog.Error("failed to read events", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	events := make([]models.Event, 0, len(records))
	for id, ev := range records {
		ev.ID = id
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Created.Before(events[j].Created) })

	middleware.JSONResponse(w, http.StatusOK, events)
}

// Update handles PUT /events/{id}
// Replaces the event's fields and dates list. Existing participant vote
// arrays are padded with undecided or truncated to the new option count;
// created is preserved.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	var req models.EventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.TribeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "tribe_id is required")
		return
	}
	if len(req.Dates) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one date option is required")
		return
	}

	dates, err := schedule.BuildOptions(req.Dates)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var ev models.Event
	found, err := h.st.Read(r.Context(), store.EventPath(uid, eventID), &ev)
	if err != nil {
		slog.Error("failed to read event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}

	ev.ID = eventID
	ev.Title = req.Title
	ev.Description = req.Description
	ev.Anonymous = req.Anonymous
	ev.TribeID = req.TribeID
	ev = schedule.ApplyDates(ev, dates)

	if err := h.st.Write(r.Context(), store.EventPath(uid, eventID), ev); err != nil {
		slog.Error("failed to update event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	slog.Info("event updated", "event_id", eventID, "options", len(dates))

	middleware.JSONResponse(w, http.StatusOK, ev)
}

// Patch handles PATCH /events/{id}
// Edits title, description or the anonymous flag without touching dates
// or participants.
func (h *EventHandler) Patch(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	var req models.EventFieldsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Title == nil && req.Description == nil && req.Anonymous == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nothing to update")
		return
	}
	if req.Title != nil && *req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title cannot be empty")
		return
	}

	var ev models.Event
	found, err := h.st.Read(r.Context(), store.EventPath(uid, eventID), &ev)
	if err != nil {
		slog.Error("failed to read event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}

	ev.ID = eventID
	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.Description != nil {
		ev.Description = *req.Description
	}
	if req.Anonymous != nil {
		ev.Anonymous = *req.Anonymous
	}

	if err := h.st.Write(r.Context(), store.EventPath(uid, eventID), ev); err != nil {
		slog.Error("failed to patch event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ev)
}

// Delete handles DELETE /events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	if err := h.st.Delete(r.Context(), store.EventPath(uid, eventID)); err != nil {
		slog.Error("failed to delete event", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Watch handles GET /events/watch
// Streams the owner's event list as server-sent events: one snapshot on
// connect and another after every store change, until the client
// disconnects.
func (h *EventHandler) Watch(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	// Only the newest snapshot matters, so a slow client coalesces
	// intermediate ones instead of dropping the latest.
	var (
		mu      sync.Mutex
		pending json.RawMessage
	)
	kick := make(chan struct{}, 1)
	cancel, err := h.st.Subscribe(r.Context(), store.EventsPath(uid), func(snap json.RawMessage) {
		mu.Lock()
		pending = snap
		mu.Unlock()
		select {
		case kick <- struct{}{}:
		default:
		}
	})
	if err != nil {
		slog.Error("failed to subscribe", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to watch events")
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-kick:
			mu.Lock()
			snap := pending
			mu.Unlock()
			fmt.Fprintf(w, "data: %s\n\n", snap)
			flusher.Flush()
		}
	}
}

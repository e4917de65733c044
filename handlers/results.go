// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/danielhkuo/tribedates/middleware"
	"github.com/danielhkuo/tribedates/models"
	"github.com/danielhkuo/tribedates/schedule"
	"github.com/danielhkuo/tribedates/store"
)

// ResultsHandler serves aggregated vote results to the event owner.
type ResultsHandler struct {
	st store.Store
}

func NewResultsHandler(st store.Store) *ResultsHandler {
	return &ResultsHandler{st: st}
}

// Get handles GET /events/{id}/results
// Returns per-option yes/no tallies, the best options, and the raw
// participant rows. Names are masked when the event is anonymous.
func (h *ResultsHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)
	eventID := r.PathValue("id")

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

	tallies := schedule.TallyVotes(ev)
	best := schedule.BestOptions(tallies)
	rows := schedule.DisplayRows(ev, tallies, best)

	participants := participantRows(ev)

	middleware.JSONResponse(w, http.StatusOK, models.EventResultsResponse{
		EventID:      eventID,
		Title:        ev.Title,
		Type:         ev.Type,
		Anonymous:    ev.Anonymous,
		Rows:         rows,
		BestOptions:  best,
		Participants: participants,
	})
}

// participantRows flattens the participant map into a stable slice.
// Anonymous events replace each name with a numbered placeholder.
func participantRows(ev models.Event) []models.ParticipantRow {
	names := make([]string, 0, len(ev.Participants))
	for name := range ev.Participants {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]models.ParticipantRow, 0, len(names))
	for i, name := range names {
		display := name
		if ev.Anonymous {
			display = fmt.Sprintf("(Anonymous %d)", i+1)
		}
		rows = append(rows, models.ParticipantRow{
			Name:  display,
			Votes: ev.Participants[name].Votes,
		})
	}
	return rows
}

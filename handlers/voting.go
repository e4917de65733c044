// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/tribedates/cliparse"
	"github.com/danielhkuo/tribedates/middleware"
	"github.com/danielhkuo/tribedates/models"
	"github.com/danielhkuo/tribedates/store"
)

// VotingHandler serves the public ballot endpoints reached through a
// shared vote link. The link identifies the event owner and the event;
// no user key is involved.
type VotingHandler struct {
	st  store.Store
	cfg cliparse.Config
}

func NewVotingHandler(st store.Store, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{st: st, cfg: cfg}
}

// GetBallot handles GET /vote?event=E&user=U
// Returns the event's title, description and date options for the
// ballot page. Participant names are never included.
func (h *VotingHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	ownerID, eventID, ok := voteParams(w, r)
	if !ok {
		return
	}

	var ev models.Event
	found, err := h.st.Read(r.Context(), store.EventPath(ownerID, eventID), &ev)
	if err != nil {
		slog.Error("failed to read event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotResponse{
		EventID:     eventID,
		Title:       ev.Title,
		Description: ev.Description,
		Type:        ev.Type,
		Anonymous:   ev.Anonymous,
		Dates:       ev.Dates,
	})
}

// SubmitVote handles POST /vote?event=E&user=U
// Records one respondent's votes, one value per date option. A repeat
// submission under the same name replaces the earlier response.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	ownerID, eventID, ok := voteParams(w, r)
	if !ok {
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// The name becomes a store path segment, so it must be a clean
	// single segment or the write would land outside this response.
	if !store.ValidSegment(req.Name) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must be non-empty and must not contain '/'")
		return
	}
	for i, v := range req.Votes {
		if !models.ValidVote(v) {
			middleware.ErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("vote at index %d must be 0, 1 or 2", i))
			return
		}
	}

	var ev models.Event
	found, err := h.st.Read(r.Context(), store.EventPath(ownerID, eventID), &ev)
	if err != nil {
		slog.Error("failed to read event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}

	if len(req.Votes) != len(ev.Dates) {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("expected %d votes, got %d", len(ev.Dates), len(req.Votes)))
		return
	}

	response := models.ParticipantResponse{
		Votes:    req.Votes,
		MemberID: req.MemberID,
	}
	path := store.EventPath(ownerID, eventID) + "/participants/" + req.Name
	if err := h.st.Write(r.Context(), path, response); err != nil {
		slog.Error("failed to write response", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit votes")
		return
	}

	slog.Info("votes submitted", "event_id", eventID, "participant", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Message: "Votes submitted successfully",
	})
}

func voteParams(w http.ResponseWriter, r *http.Request) (ownerID, eventID string, ok bool) {
	ownerID = r.URL.Query().Get("user")
	eventID = r.URL.Query().Get("event")
	if ownerID == "" || eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event and user query parameters are required")
		return "", "", false
	}
	// Both values are spliced into store paths and therefore must each
	// be a single clean segment.
	if !store.ValidSegment(ownerID) || !store.ValidSegment(eventID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid event or user parameter")
		return "", "", false
	}
	return ownerID, eventID, true
}

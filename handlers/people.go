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

type PeopleHandler struct {
	st  store.Store
	cfg cliparse.Config
}

func NewPeopleHandler(st store.Store, cfg cliparse.Config) *PeopleHandler {
	return &PeopleHandler{st: st, cfg: cfg}
}

// Create handles POST /people
func (h *PeopleHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)

	var req models.PersonRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Both names are required, as in the sign-up form
	if req.FirstName == "" || req.LastName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}

	id, err := h.st.Append(r.Context(), store.PeoplePath(uid), nil)
	if err != nil {
		slog.Error("failed to allocate person ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add person")
		return
	}

	person := models.Person{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Created:   time.Now().UTC(),
	}
	if err := h.st.Write(r.Context(), store.PersonPath(uid, id), person); err != nil {
		slog.Error("failed to write person", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add person")
		return
	}

	slog.Info("person added", "person_id", id)

	middleware.JSONResponse(w, http.StatusCreated, person)
}

// List handles GET /people
func (h *PeopleHandler) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)

	records := map[string]models.Person{}
	if _, err := h.st.Read(r.Context(), store.PeoplePath(uid), &records); err != nil {
		slog.Error("failed to read people", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	people := make([]models.Person, 0, len(records))
	for id, p := range records {
		p.ID = id
		people = append(people, p)
	}
	sort.Slice(people, func(i, j int) bool {
		if people[i].LastName != people[j].LastName {
			return people[i].LastName < people[j].LastName
		}
		return people[i].FirstName < people[j].FirstName
	})

	middleware.JSONResponse(w, http.StatusOK, people)
}

// Update handles PUT /people/{id}
func (h *PeopleHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)
	personID := r.PathValue("id")
	if personID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "person id is required")
		return
	}

	var req models.PersonRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}

	var person models.Person
	found, err := h.st.Read(r.Context(), store.PersonPath(uid, personID), &person)
	if err != nil {
		slog.Error("failed to read person", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Person not found")
		return
	}

	person.ID = personID
	person.FirstName = req.FirstName
	person.LastName = req.LastName
	if err := h.st.Write(r.Context(), store.PersonPath(uid, personID), person); err != nil {
		slog.Error("failed to update person", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update person")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, person)
}

// Delete handles DELETE /people/{id}
// Deleting a person also strips the id from every tribe member list.
func (h *PeopleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r)
	personID := r.PathValue("id")
	if personID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "person id is required")
		return
	}

	if err := cascade.DeletePerson(r.Context(), h.st, uid, personID); err != nil {
		slog.Error("failed to delete person", "error", err, "person_id", personID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete person")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

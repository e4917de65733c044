// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/tribedates/cliparse"
	"github.com/danielhkuo/tribedates/handlers"
	"github.com/danielhkuo/tribedates/middleware"
	"github.com/danielhkuo/tribedates/store"
)

func NewRouter(st store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(st, cfg)
	peopleHandler := handlers.NewPeopleHandler(st, cfg)
	tribeHandler := handlers.NewTribeHandler(st, cfg)
	eventHandler := handlers.NewEventHandler(st, cfg)
	votingHandler := handlers.NewVotingHandler(st, cfg)
	resultsHandler := handlers.NewResultsHandler(st)

	// owned wraps an owner-only handler with key validation and logging.
	owned := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithUser(cfg.UserKeySalt, middleware.WithLogging(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Account registration (public)
	mux.HandleFunc("POST /users/register", middleware.WithLogging(userHandler.Register))

	// People management (owner operations)
	mux.HandleFunc("POST /people", owned(peopleHandler.Create))
	mux.HandleFunc("GET /people", owned(peopleHandler.List))
	mux.HandleFunc("PUT /people/{id}", owned(peopleHandler.Update))
	mux.HandleFunc("DELETE /people/{id}", owned(peopleHandler.Delete))

	// Tribe management (owner operations)
	mux.HandleFunc("POST /tribes", owned(tribeHandler.Create))
	mux.HandleFunc("GET /tribes", owned(tribeHandler.List))
	mux.HandleFunc("PUT /tribes/{id}", owned(tribeHandler.Update))
	mux.HandleFunc("DELETE /tribes/{id}", owned(tribeHandler.Delete))

	// Event management (owner operations)
	mux.HandleFunc("POST /events", owned(eventHandler.Create))
	mux.HandleFunc("GET /events", owned(eventHandler.List))
	mux.HandleFunc("GET /events/watch", owned(eventHandler.Watch))
	mux.HandleFunc("PUT /events/{id}", owned(eventHandler.Update))
	mux.HandleFunc("PATCH /events/{id}", owned(eventHandler.Patch))
	mux.HandleFunc("DELETE /events/{id}", owned(eventHandler.Delete))
	mux.HandleFunc("GET /events/{id}/results", owned(resultsHandler.Get))

	// Voting operations (public, reached via the shared link)
	mux.HandleFunc("GET /vote", middleware.WithLogging(votingHandler.GetBallot))
	mux.HandleFunc("POST /vote", middleware.WithLogging(votingHandler.SubmitVote))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tribedates API v1"))
	})

	return mux
}

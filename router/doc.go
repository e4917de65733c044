// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the TribeDates API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

# Endpoints

Health:

	GET /health

Registration (public):

	POST /users/register - Create an account, returns user_id and user_key

People (owner, requires X-User-ID and X-User-Key):

	POST   /people      - Add contact
	GET    /people      - List contacts
	PUT    /people/{id} - Update contact
	DELETE /people/{id} - Remove contact and strip tribe memberships

Tribes (owner):

	POST   /tribes      - Create tribe
	GET    /tribes      - List tribes
	PUT    /tribes/{id} - Update tribe, propagates membership to events
	DELETE /tribes/{id} - Remove tribe

Events (owner):

	POST   /events              - Create event, returns vote_url
	GET    /events              - List events
	GET    /events/watch        - Server-sent events stream of changes
	PUT    /events/{id}         - Replace event, reconciles votes
	PATCH  /events/{id}         - Update title/description/anonymous
	DELETE /events/{id}         - Remove event
	GET    /events/{id}/results - Tallies and best options

Voting (public, reached via the shared link):

	GET  /vote?event=E&user=U - Ballot page data
	POST /vote?event=E&user=U - Submit one response

# Handler Initialization

The router creates handler instances with dependency injection:

	eventHandler := handlers.NewEventHandler(st, cfg)
	votingHandler := handlers.NewVotingHandler(st, cfg)

All handlers receive the document store; most also take configuration.
*/
package router

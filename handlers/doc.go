// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the TribeDates API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - UserHandler: Account registration
  - PeopleHandler: Contact CRUD with cascading delete
  - TribeHandler: Tribe CRUD with membership propagation
  - EventHandler: Event lifecycle, live watch stream
  - VotingHandler: Public ballot retrieval and vote submission
  - ResultsHandler: Aggregated tallies for the event owner

Handlers are created via constructor functions that accept a store.Store
and, where needed, Config:

	eventHandler := handlers.NewEventHandler(st, cfg)

# Owner Operations

Everything under /people, /tribes and /events belongs to one account and
requires the X-User-ID and X-User-Key headers:

	POST /users/register   → Register (returns user_id and user_key)
	POST /events           → Create (returns event_id and vote_url)
	PUT  /events/{id}      → Update (re-reconciles existing votes)
	GET  /events/{id}/results → Get (tallies, best options, rows)
	GET  /events/watch     → Watch (server-sent events stream)

# Voting Flow

Voters interact via the shared vote link, no credentials involved:

	GET  /vote?event=E&user=U → GetBallot (title and date options)
	POST /vote?event=E&user=U → SubmitVote (one value per option)

Vote values are 0 (no), 1 (undecided) and 2 (yes). Submitting again
under the same name replaces the earlier response.

# Aggregation

Tallying and best-option selection are implemented in package schedule:

	tallies := schedule.TallyVotes(ev)
	best := schedule.BestOptions(tallies)

An option is best when it holds the maximum yes count and that count is
above zero.
*/
package handlers

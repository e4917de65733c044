// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the TribeDates API server.

TribeDates is a group scheduling service: an organizer creates an event
with candidate date options (specific dates, date ranges, or days of the
week), shares a vote link, and invitees respond yes / no / undecided per
option. The server aggregates the responses and surfaces the best dates.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	USER_KEY_SALT=secret go run main.go

Or with flags:

	go run main.go -p 3419 -s sqlite -d "file:tribedates.db"

# Configuration

Required settings:

  - USER_KEY_SALT (--user-salt): Secret for user key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - STORE_BACKEND (-s): memory, sqlite, postgres or firebase (default: sqlite)
  - DATABASE_URL (-d): Connection string for the sqlite/postgres backends
  - FIREBASE_CREDENTIALS: Service account file for the firebase backend
  - FIREBASE_DATABASE_URL: Realtime Database URL for the firebase backend
  - BASE_URL: Public base URL used when building vote links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, people, tribes, events, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, user key validation, JSON helpers
  - models: Request/response and stored document types
  - schedule: Date-option editing, vote tallying, reconciliation
  - cascade: Cross-record updates (person delete, tribe propagation)
  - store: Document store backends (memory, SQL, Firebase)
  - auth: Key generation and validation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
